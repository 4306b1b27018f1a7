package echoapi_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	echoapi "github.com/trezcool/gateway/apps/api/echo"
	"github.com/trezcool/gateway/core/grade"
	"github.com/trezcool/gateway/storage/spreadsheet"
)

func courseWorkbook(t *testing.T, rows ...[]interface{}) []byte {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func newUploadRequest(t *testing.T, path, token string, data []byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "courses.xlsx")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, httptest.NewRecorder()
}

func Test_gpaApi_scale(t *testing.T) {
	app := setup(t)
	runHTTPTests(t, app, []httpTest{
		{name: "Grade scale", path: "/v1/grades/scale", wantData: marchallObj(t, grade.Scale())},
	})
}

func Test_gpaApi_calculate(t *testing.T) {
	app := setup(t)

	runHTTPTests(t, app, []httpTest{
		{
			name:   "Invalid courses",
			method: http.MethodPost,
			path:   "/v1/gpa",
			body: marchallObj(t, echoapi.CalculationRequest{
				Courses: []grade.CourseEntry{
					{Name: "Calculus", Credits: 4, Grade: "A"},
					{Name: " ", Credits: 0, Grade: "Z"},
				},
				Prior: &grade.PriorRecord{Credits: -1, GPA: 5},
			}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"courses.1.name":    "Course name is required",
				"courses.1.credits": "Credit hours must be greater than 0",
				"courses.1.grade":   "Unknown grade",
				"prior.credits":     "Credits cannot be negative",
				"prior.gpa":         "GPA must be between 0 and 4",
			}),
		},
		{
			name:   "Credits too large",
			method: http.MethodPost,
			path:   "/v1/gpa",
			body: marchallObj(t, echoapi.CalculationRequest{
				Courses: []grade.CourseEntry{{Name: "Calculus", Credits: 1e307, Grade: "A"}},
				Prior:   &grade.PriorRecord{Credits: 1e307, GPA: 3},
			}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"courses.0.credits": "Credit hours cannot exceed 30",
				"prior.credits":     "Credits cannot exceed 1000",
			}),
		},
	})

	rec := do(t, app, http.MethodPost, "/v1/gpa", "", echoapi.CalculationRequest{
		Courses: []grade.CourseEntry{
			{Name: "Calculus", Credits: 4, Grade: "A"},
			{Name: "Biology", Credits: 3, Grade: "B"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var sum grade.Summary
	decode(t, rec.Body, &sum)
	assert.Equal(t, 7.0, sum.TotalCredits)
	assert.Equal(t, 25.0, sum.TotalQualityPoints)
	assert.Equal(t, 3.57, sum.SemesterGPA)
	assert.Len(t, sum.Courses, 2)
	assert.Nil(t, sum.Prior)

	rec = do(t, app, http.MethodPost, "/v1/gpa", "", echoapi.CalculationRequest{})
	require.Equal(t, http.StatusOK, rec.Code)
	sum = grade.Summary{}
	decode(t, rec.Body, &sum)
	assert.Zero(t, sum.SemesterGPA, "no courses, no GPA")
}

func Test_gpaApi_import(t *testing.T) {
	app := setup(t)

	runHTTPTests(t, app, []httpTest{
		{
			name: "File required", method: http.MethodPost, path: "/v1/gpa/import", wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "file is required"}),
		},
	})

	data := courseWorkbook(t,
		[]interface{}{"Course", "Credits", "Grade"},
		[]interface{}{"Calculus", 4, "A"},
		[]interface{}{"Biology", 3, "b"},
	)
	req, rec := newUploadRequest(t, "/v1/gpa/import", "", data)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp echoapi.ImportResponse
	decode(t, rec.Body, &resp)
	assert.Equal(t, 2, resp.Imported)
	assert.Equal(t, 3.57, resp.Summary.SemesterGPA)

	req, rec = newUploadRequest(t, "/v1/gpa/import", "", courseWorkbook(t, []interface{}{"Name", "Units"}))
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	ok, err := jsonBytesEqual(rec.Body.Bytes(), marchallObj(t, map[string]string{"file": "First row must be: Course, Credits, Grade"}))
	require.NoError(t, err)
	assert.True(t, ok, rec.Body.String())
}

func Test_gpaApi_calculator(t *testing.T) {
	app := setup(t)
	token, _ := newSession(t, app)

	summary := func(rec *httptest.ResponseRecorder) grade.Summary {
		var sum grade.Summary
		decode(t, rec.Body, &sum)
		return sum
	}

	runHTTPTests(t, app, []httpTest{
		{name: "Auth required", path: "/v1/gpa", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Invalid course", method: http.MethodPost, path: "/v1/gpa/courses", token: token,
			body:     marchallObj(t, grade.CourseEntry{Name: "Calculus", Credits: 4}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"grade": "Grade is required"}),
		},
		{
			name: "Unknown course", method: http.MethodDelete, path: "/v1/gpa/courses/nope", token: token,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "course not found"}),
		},
	})

	rec := do(t, app, http.MethodPost, "/v1/gpa/courses", token, grade.CourseEntry{Name: "Calculus", Credits: 4, Grade: "A"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sum := summary(rec)
	require.Len(t, sum.Courses, 1)
	calculusID := sum.Courses[0].ID
	assert.NotEmpty(t, calculusID)
	assert.Equal(t, 4.0, sum.SemesterGPA)

	rec = do(t, app, http.MethodPost, "/v1/gpa/courses", token, grade.CourseEntry{Name: "Biology", Credits: 3, Grade: "B"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, app, http.MethodPut, "/v1/gpa/prior", token, grade.PriorRecord{Credits: 30, GPA: 3})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	sum = summary(rec)
	require.NotNil(t, sum.Prior)
	assert.Equal(t, 37.0, sum.CombinedCredits)
	assert.Equal(t, grade.TrendUp, sum.Trend)

	rec = do(t, app, http.MethodGet, "/v1/gpa/export", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, spreadsheet.ContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "gpa.xlsx")
	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	name, err := f.GetCellValue("Courses", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Calculus", name)

	rec = do(t, app, http.MethodDelete, "/v1/gpa/courses/"+calculusID, token)
	require.Equal(t, http.StatusOK, rec.Code)
	sum = summary(rec)
	require.Len(t, sum.Courses, 1)
	assert.Equal(t, "Biology", sum.Courses[0].Name)

	req, rec := newUploadRequest(t, "/v1/gpa/courses/import", token, courseWorkbook(t,
		[]interface{}{"Course", "Credits", "Grade"},
		[]interface{}{"Physics", 4, "A-"},
	))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Len(t, summary(rec).Courses, 2)

	rec = do(t, app, http.MethodDelete, "/v1/gpa/prior", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, summary(rec).Prior)

	rec = do(t, app, http.MethodDelete, "/v1/gpa/courses", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, summary(rec).Courses)

	rec = do(t, app, http.MethodGet, "/v1/gpa", token)
	require.Equal(t, http.StatusOK, rec.Code)
	sum = summary(rec)
	assert.Empty(t, sum.Courses)
	assert.Nil(t, sum.Prior)
}
