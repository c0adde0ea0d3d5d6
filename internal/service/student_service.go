package service

import (
	"context"
	"encoding/json"
	"fmt"
	"slp_caseload_backend/internal/model"
	"slp_caseload_backend/internal/repository"
	"slp_caseload_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const caseloadSummaryTTL = 5 * time.Minute

// StudentService manages caseload entries. Creating a student or changing
// its IEP dates re-runs the report scheduler so the reporting calendar
// tracks the paperwork dates.

type StudentService struct {
	StudentRepo *repository.StudentRepository
	SessionRepo *repository.SessionRepository
	GoalRepo    *repository.GoalRepository
	Scheduler   *ReportSchedulerService
	Redis       *redis.Client
}

func NewStudentService(
	studentRepo *repository.StudentRepository,
	sessionRepo *repository.SessionRepository,
	goalRepo *repository.GoalRepository,
	scheduler *ReportSchedulerService,
	rdb *redis.Client,
) *StudentService {
	return &StudentService{
		StudentRepo: studentRepo,
		SessionRepo: sessionRepo,
		GoalRepo:    goalRepo,
		Scheduler:   scheduler,
		Redis:       rdb,
	}
}

// CreateStudentRequest carries the caseload entry form.
type CreateStudentRequest struct {
	FirstName        string     `json:"firstName" binding:"required,max=100"`
	LastName         string     `json:"lastName" binding:"required,max=100"`
	DateOfBirth      *time.Time `json:"dateOfBirth"`
	Grade            string     `json:"grade" binding:"max=20"`
	SchoolID         *uint      `json:"schoolId"`
	SessionsPerWeek  int        `json:"sessionsPerWeek"`
	MinutesPerWeek   int        `json:"minutesPerWeek"`
	IEPDate          *time.Time `json:"iepDate"`
	AnnualReviewDate *time.Time `json:"annualReviewDate"`
	Notes            string     `json:"notes"`
}

type UpdateStudentRequest struct {
	FirstName        string     `json:"firstName" binding:"max=100"`
	LastName         string     `json:"lastName" binding:"max=100"`
	DateOfBirth      *time.Time `json:"dateOfBirth"`
	Grade            string     `json:"grade" binding:"max=20"`
	SchoolID         *uint      `json:"schoolId"`
	SessionsPerWeek  *int       `json:"sessionsPerWeek"`
	MinutesPerWeek   *int       `json:"minutesPerWeek"`
	IEPDate          *time.Time `json:"iepDate"`
	AnnualReviewDate *time.Time `json:"annualReviewDate"`
	Active           *bool      `json:"active"`
	Notes            *string    `json:"notes"`
}

func (s *StudentService) CreateStudent(therapistID uint, req CreateStudentRequest) (*model.Student, error) {
	student := &model.Student{
		TherapistID:      therapistID,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		DateOfBirth:      req.DateOfBirth,
		Grade:            req.Grade,
		SchoolID:         req.SchoolID,
		SessionsPerWeek:  req.SessionsPerWeek,
		MinutesPerWeek:   req.MinutesPerWeek,
		IEPDate:          req.IEPDate,
		AnnualReviewDate: req.AnnualReviewDate,
		Active:           true,
		Notes:            req.Notes,
	}

	if err := s.StudentRepo.Create(student); err != nil {
		return nil, err
	}

	if _, err := s.Scheduler.ScheduleForStudent(student); err != nil {
		logger.Log.Error("failed to schedule reports for new student",
			zap.Uint("studentId", student.ID), zap.Error(err))
	}

	s.invalidateSummary(therapistID)
	return student, nil
}

func (s *StudentService) UpdateStudent(therapistID, studentID uint, req UpdateStudentRequest) (*model.Student, error) {
	student, err := s.StudentRepo.FindByIDAndTherapist(studentID, therapistID)
	if err != nil {
		return nil, err
	}

	datesChanged := false

	if req.FirstName != "" {
		student.FirstName = req.FirstName
	}
	if req.LastName != "" {
		student.LastName = req.LastName
	}
	if req.DateOfBirth != nil {
		student.DateOfBirth = req.DateOfBirth
	}
	if req.Grade != "" {
		student.Grade = req.Grade
	}
	if req.SchoolID != nil {
		student.SchoolID = req.SchoolID
	}
	if req.SessionsPerWeek != nil {
		student.SessionsPerWeek = *req.SessionsPerWeek
	}
	if req.MinutesPerWeek != nil {
		student.MinutesPerWeek = *req.MinutesPerWeek
	}
	if req.IEPDate != nil {
		student.IEPDate = req.IEPDate
		datesChanged = true
	}
	if req.AnnualReviewDate != nil {
		student.AnnualReviewDate = req.AnnualReviewDate
		datesChanged = true
	}
	if req.Active != nil {
		student.Active = *req.Active
	}
	if req.Notes != nil {
		student.Notes = *req.Notes
	}

	if err := s.StudentRepo.Update(student); err != nil {
		return nil, err
	}

	if datesChanged {
		if _, err := s.Scheduler.ScheduleForStudent(student); err != nil {
			logger.Log.Error("failed to reschedule reports",
				zap.Uint("studentId", student.ID), zap.Error(err))
		}
	}

	s.invalidateSummary(therapistID)
	return student, nil
}

func (s *StudentService) GetStudent(therapistID, studentID uint) (*model.Student, error) {
	return s.StudentRepo.FindByIDAndTherapist(studentID, therapistID)
}

func (s *StudentService) ListStudents(therapistID uint, name string, activeOnly bool, page, pageSize int) ([]model.Student, int64, error) {
	return s.StudentRepo.FindByTherapist(therapistID, name, activeOnly, page, pageSize)
}

func (s *StudentService) DeleteStudent(therapistID, studentID uint) error {
	if _, err := s.StudentRepo.FindByIDAndTherapist(studentID, therapistID); err != nil {
		return err
	}
	if err := s.StudentRepo.Delete(studentID); err != nil {
		return err
	}
	s.invalidateSummary(therapistID)
	return nil
}

// CaseloadSummary is the dashboard card: counts that are expensive enough
// to cache for a few minutes.
type CaseloadSummary struct {
	ActiveStudents int64 `json:"activeStudents"`
	TotalGoals     int   `json:"totalGoals"`
	AchievedGoals  int   `json:"achievedGoals"`
	SessionsLogged int64 `json:"sessionsLogged"`
}

func (s *StudentService) GetCaseloadSummary(therapistID uint) (*CaseloadSummary, error) {
	ctx := context.Background()
	key := summaryCacheKey(therapistID)

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
			var summary CaseloadSummary
			if json.Unmarshal([]byte(cached), &summary) == nil {
				return &summary, nil
			}
		}
	}

	students, _, err := s.StudentRepo.FindByTherapist(therapistID, "", true, 1, 1000)
	if err != nil {
		return nil, err
	}

	summary := &CaseloadSummary{ActiveStudents: int64(len(students))}
	for _, st := range students {
		goals, err := s.GoalRepo.FindByStudentID(st.ID)
		if err != nil {
			return nil, err
		}
		summary.TotalGoals += len(goals)
		for _, g := range goals {
			if g.Status == model.GoalAchieved {
				summary.AchievedGoals++
			}
		}

		sessions, err := s.SessionRepo.CountByStudentID(st.ID)
		if err != nil {
			return nil, err
		}
		summary.SessionsLogged += sessions
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(summary); err == nil {
			s.Redis.Set(ctx, key, payload, caseloadSummaryTTL)
		}
	}
	return summary, nil
}

func (s *StudentService) invalidateSummary(therapistID uint) {
	if s.Redis == nil {
		return
	}
	s.Redis.Del(context.Background(), summaryCacheKey(therapistID))
}

func summaryCacheKey(therapistID uint) string {
	return fmt.Sprintf("caseload:summary:%d", therapistID)
}
