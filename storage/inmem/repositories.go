package inmem

import (
	"context"

	"github.com/trezcool/gateway/core/dashboard"
	"github.com/trezcool/gateway/core/degree"
	"github.com/trezcool/gateway/core/finance"
	"github.com/trezcool/gateway/core/planner"
	"github.com/trezcool/gateway/core/schedule"
)

type degreeRepository struct {
	db *DB
}

var _ degree.Repository = (*degreeRepository)(nil) // interface compliance check

func NewDegreeRepository(db *DB) degree.Repository {
	return &degreeRepository{db: db}
}

func (repo *degreeRepository) GetStudent(context.Context) (degree.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.data.Student, nil
}

func (repo *degreeRepository) QueryRequirements(context.Context) ([]degree.RequirementCategory, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	reqs := clone(repo.db.data.Requirements)
	for i := range reqs {
		reqs[i].Courses = clone(reqs[i].Courses)
	}
	return reqs, nil
}

func (repo *degreeRepository) QuerySemesters(context.Context) ([]degree.SemesterRecord, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return clone(repo.db.data.Semesters), nil
}

type catalog struct {
	db *DB
}

var _ planner.Catalog = (*catalog)(nil)

func NewCatalog(db *DB) planner.Catalog {
	return &catalog{db: db}
}

func (c *catalog) QueryOfferings(context.Context) ([]planner.Offering, error) {
	c.db.RLock()
	defer c.db.RUnlock()
	return clone(c.db.data.Offerings), nil
}

func (c *catalog) GetOffering(_ context.Context, id string) (planner.Offering, error) {
	c.db.RLock()
	defer c.db.RUnlock()
	for _, o := range c.db.data.Offerings {
		if o.ID == id {
			return o, nil
		}
	}
	return planner.Offering{}, planner.ErrNotFound
}

type scheduleRepository struct {
	db *DB
}

var _ schedule.Repository = (*scheduleRepository)(nil)

func NewScheduleRepository(db *DB) schedule.Repository {
	return &scheduleRepository{db: db}
}

func (repo *scheduleRepository) QueryMeetings(context.Context) ([]schedule.Meeting, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return clone(repo.db.data.Meetings), nil
}

func (repo *scheduleRepository) QueryHolds(context.Context) ([]schedule.Hold, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return clone(repo.db.data.Holds), nil
}

func (repo *scheduleRepository) QueryEnrollments(context.Context) ([]schedule.Enrollment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return clone(repo.db.data.Enrollments), nil
}

type dashboardRepository struct {
	db *DB
}

var _ dashboard.Repository = (*dashboardRepository)(nil)

func NewDashboardRepository(db *DB) dashboard.Repository {
	return &dashboardRepository{db: db}
}

func (repo *dashboardRepository) QueryAnnouncements(context.Context) ([]dashboard.Announcement, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return clone(repo.db.data.Announcements), nil
}

func (repo *dashboardRepository) QueryTodos(context.Context) ([]dashboard.Todo, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return clone(repo.db.data.Todos), nil
}

func (repo *dashboardRepository) QueryNotifications(context.Context) ([]dashboard.Notification, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return clone(repo.db.data.Notifications), nil
}

func (repo *dashboardRepository) QueryApps(context.Context) ([]dashboard.App, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return clone(repo.db.data.Apps), nil
}

type financeRepository struct {
	db *DB
}

var _ finance.Repository = (*financeRepository)(nil)

func NewFinanceRepository(db *DB) finance.Repository {
	return &financeRepository{db: db}
}

func (repo *financeRepository) GetAccount(context.Context) (finance.Account, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	acct := repo.db.data.Account
	acct.Items = clone(acct.Items)
	return acct, nil
}

func (repo *financeRepository) GetAidYear(context.Context) (finance.AidYear, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	year := repo.db.data.AidYear
	year.Awards = clone(year.Awards)
	year.Dates = clone(year.Dates)
	return year, nil
}
