package grade

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/gateway/core"
)

var (
	gradeTokenTag  = "gradetoken"
	gradeTokenText = "{0} is not on the grade scale"

	courseMessages = core.FieldMessages{
		"name.required":    "Course name is required",
		"credits.gt":       "Credit hours must be greater than 0",
		"credits.lte":      "Credit hours cannot exceed 30",
		"grade.required":   "Grade is required",
		"grade.gradetoken": "Unknown grade",
	}
	priorMessages = core.FieldMessages{
		"credits.gte": "Credits cannot be negative",
		"credits.lte": "Credits cannot exceed 1000",
		"gpa.gte":     "GPA must be between 0 and 4",
		"gpa.lte":     "GPA must be between 0 and 4",
	}
)

// InitValidators registers the grade validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(gradeTokenTag, gradeTokenValidation)
	core.RegisterCustomTranslation(validate, translator, gradeTokenTag, gradeTokenText)
}

// gradeTokenValidation checks that the grade is on the scale.
func gradeTokenValidation(fl validator.FieldLevel) bool {
	return IsValid(Grade(fl.Field().String()))
}

func (c *CourseEntry) Validate(validate *validator.Validate, translator ut.Translator) error {
	c.Name = core.CleanString(c.Name)
	c.Grade = Grade(core.CleanString(string(c.Grade)))
	return core.ValidateStruct(validate, translator, c, courseMessages)
}

func (p PriorRecord) Validate(validate *validator.Validate, translator ut.Translator) error {
	return core.ValidateStruct(validate, translator, p, priorMessages)
}
