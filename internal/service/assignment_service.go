package service

import (
	"brainink_backend/internal/config"
	"brainink_backend/internal/gating"
	"brainink_backend/internal/model"
	"brainink_backend/internal/repository"
	"brainink_backend/internal/util"
	"context"
	"fmt"
	"io"
	"time"

	"gorm.io/gorm"
)

// AssignmentService owns the course session: it loads one consistent
// snapshot of {definitions, ledger, block completion}, runs the gating
// engine over it, and drives the assign/submit lifecycle.
type AssignmentService struct {
	AssignmentRepo *repository.AssignmentRepository
	StudentRepo    *repository.StudentAssignmentRepository
	CourseRepo     *repository.CourseRepository
	Study          *StudyService
	Storage        *StorageService
	Grading        *GradingService
	Cfg            *config.Config
	DB             *gorm.DB

	orderCache gating.OrderCache
}

func NewAssignmentService(
	assignmentRepo *repository.AssignmentRepository,
	studentRepo *repository.StudentAssignmentRepository,
	courseRepo *repository.CourseRepository,
	study *StudyService,
	storage *StorageService,
	grading *GradingService,
	cfg *config.Config,
	db *gorm.DB,
) *AssignmentService {
	return &AssignmentService{
		AssignmentRepo: assignmentRepo,
		StudentRepo:    studentRepo,
		CourseRepo:     courseRepo,
		Study:          study,
		Storage:        storage,
		Grading:        grading,
		Cfg:            cfg,
		DB:             db,
	}
}

// courseSnapshot is one atomic view of the three gating inputs plus the
// block records used for lock-reason text. It is rebuilt on every query;
// gating results are never cached across input changes.
type courseSnapshot struct {
	definitions []model.Assignment
	blocks      map[uint]*model.CourseBlock
	ledger      map[uint]*model.StudentAssignment
	inputs      gating.Inputs
}

func (s *AssignmentService) loadSnapshot(userID, courseID uint) (*courseSnapshot, error) {
	definitions, err := s.AssignmentRepo.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}

	blockList, err := s.CourseRepo.ListBlocks(courseID)
	if err != nil {
		return nil, err
	}
	blocks := make(map[uint]*model.CourseBlock, len(blockList))
	for _, b := range blockList {
		blocks[b.ID] = b
	}

	entries, err := s.StudentRepo.ListByUserAndCourse(userID, courseID)
	if err != nil {
		return nil, err
	}
	ledger := make(map[uint]*model.StudentAssignment, len(entries))
	for _, e := range entries {
		ledger[e.AssignmentID] = e
	}

	done, err := s.Study.CompletionMap(userID, courseID)
	if err != nil {
		return nil, err
	}

	return &courseSnapshot{
		definitions: definitions,
		blocks:      blocks,
		ledger:      ledger,
		inputs: gating.Inputs{
			Definitions:   definitions,
			Ledger:        ledger,
			BlockDone:     done,
			Previous:      s.orderCache.Resolve(definitions),
			PassThreshold: s.Cfg.Gating.PassThreshold,
		},
	}, nil
}

// AssignmentView is what the client renders per assignment: the record (real
// or synthetic), its gating result and the derived UI affordances.
type AssignmentView struct {
	ID           uint                   `json:"id"`
	AssignmentID uint                   `json:"assignmentId"`
	CourseID     uint                   `json:"courseId"`
	BlockID      *uint                  `json:"blockId"`
	Title        string                 `json:"title"`
	Description  *string                `json:"description"`
	AssignedAt   time.Time              `json:"assignedAt"`
	DueDate      time.Time              `json:"dueDate"`
	Status       model.AssignmentStatus `json:"status"`
	Grade        *float64               `json:"grade"`
	Feedback     *string                `json:"feedback"`
	Synthetic    bool                   `json:"synthetic"`

	Gating     gating.Result `json:"gating"`
	LockReason string        `json:"lockReason,omitempty"`
	Action     gating.Action `json:"action"`
}

func (s *AssignmentService) buildView(rec gating.Record, sa *model.StudentAssignment, snap *courseSnapshot) AssignmentView {
	res := gating.Evaluate(rec, snap.inputs)

	view := AssignmentView{
		ID:           sa.ID,
		AssignmentID: sa.AssignmentID,
		CourseID:     sa.CourseID,
		AssignedAt:   sa.AssignedAt,
		DueDate:      sa.DueDate,
		Status:       sa.Status,
		Grade:        sa.Grade,
		Feedback:     sa.Feedback,
		Synthetic:    rec.IsSynthetic(),
		Gating:       res,
		LockReason:   gating.Explain(res, snap.blocks),
		Action:       gating.Navigation(rec, res),
	}
	if def := rec.Definition(); def != nil {
		view.BlockID = def.BlockID
		view.Title = def.Title
		view.Description = def.Description
	}
	return view
}

// ListForStudent merges the student's real ledger with pseudo-assignments
// for definitions not yet assigned, evaluates gating for each against the
// same snapshot, and returns them in curriculum order.
func (s *AssignmentService) ListForStudent(userID, courseID uint) ([]AssignmentView, error) {
	snap, err := s.loadSnapshot(userID, courseID)
	if err != nil {
		return nil, err
	}

	views := make([]AssignmentView, 0, len(snap.definitions))
	for i := range snap.definitions {
		def := &snap.definitions[i]
		if sa, ok := snap.ledger[def.ID]; ok {
			views = append(views, s.buildView(gating.Real(sa), sa, snap))
			continue
		}
		pseudo := gating.PseudoAssignment(def)
		views = append(views, s.buildView(gating.Real(pseudo), pseudo, snap))
	}

	// ledger entries whose definition disappeared from the catalog still
	// belong to the student; append them after the ordered set
	for _, sa := range snap.ledger {
		if findDef(snap.definitions, sa.AssignmentID) == nil {
			views = append(views, s.buildView(gating.Real(sa), sa, snap))
		}
	}

	return views, nil
}

// GetView evaluates a single student assignment against a fresh snapshot.
func (s *AssignmentService) GetView(userID, studentAssignmentID uint) (*AssignmentView, error) {
	sa, err := s.StudentRepo.FindByID(studentAssignmentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, err
	}
	if sa.UserID != userID {
		return nil, util.ErrPermissionDenied
	}

	snap, err := s.loadSnapshot(userID, sa.CourseID)
	if err != nil {
		return nil, err
	}
	view := s.buildView(gating.Real(sa), sa, snap)
	return &view, nil
}

// Assign creates the student's personal instance of a definition. Due date
// derives from due_days_after_assignment when present.
func (s *AssignmentService) Assign(userID, assignmentID uint) (*model.StudentAssignment, error) {
	def, err := s.AssignmentRepo.FindByID(assignmentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, err
	}

	if _, err := s.StudentRepo.FindByUserAndAssignment(userID, assignmentID); err == nil {
		return nil, util.ErrAlreadyAssigned
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	now := time.Now()
	due := now
	if def.DueDaysAfterAssignment != nil {
		due = now.Add(time.Duration(*def.DueDaysAfterAssignment) * 24 * time.Hour)
	}

	sa := &model.StudentAssignment{
		UserID:       userID,
		AssignmentID: def.ID,
		CourseID:     def.CourseID,
		AssignedAt:   now,
		DueDate:      due,
		Status:       model.StatusAssigned,
	}
	if err := s.StudentRepo.Create(sa); err != nil {
		return nil, err
	}
	sa.Assignment = def
	return sa, nil
}

type SubmitRequest struct {
	Text        string
	File        io.Reader
	FileName    string
	FileSize    int64
	ContentType string
}

// Submit enforces gating on the server: a locked assignment is rejected no
// matter what the client showed. On success the submission is stored, the
// status moves to submitted and grading is enqueued.
func (s *AssignmentService) Submit(ctx context.Context, userID, studentAssignmentID uint, req SubmitRequest) (*model.StudentAssignment, error) {
	sa, err := s.StudentRepo.FindByID(studentAssignmentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, err
	}
	if sa.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	if sa.Status == model.StatusPassed {
		return nil, util.ErrAlreadyPassed
	}
	if req.Text == "" && req.File == nil {
		return nil, util.ErrNothingSubmitted
	}

	snap, err := s.loadSnapshot(userID, sa.CourseID)
	if err != nil {
		return nil, err
	}
	if res := gating.Evaluate(gating.Real(sa), snap.inputs); res.Locked {
		return nil, util.ErrAssignmentLocked
	}

	if req.File != nil {
		key := fmt.Sprintf("submissions/%d/%s_%s", userID, model.GenerateUUID(), req.FileName)
		if _, err := s.Storage.Upload(ctx, key, req.File, req.FileSize, req.ContentType); err != nil {
			return nil, err
		}
		sa.SubmissionKey = key
	}

	now := time.Now()
	sa.SubmissionText = req.Text
	sa.SubmittedAt = &now
	sa.Status = model.StatusSubmitted
	if err := s.StudentRepo.Update(sa); err != nil {
		return nil, err
	}

	if s.Grading != nil {
		s.Grading.Enqueue(sa.ID)
	}
	return sa, nil
}

// GradeDetail returns the grade view for an attempted assignment.
func (s *AssignmentService) GradeDetail(userID, studentAssignmentID uint) (*model.StudentAssignment, error) {
	sa, err := s.StudentRepo.FindByID(studentAssignmentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, err
	}
	if sa.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	if !sa.Attempted() {
		return nil, util.ErrNotAttempted
	}
	return sa, nil
}

type AssignmentCreateRequest struct {
	CourseID               uint    `json:"courseId" binding:"required"`
	BlockID                *uint   `json:"blockId"`
	Title                  string  `json:"title" binding:"required"`
	Description            *string `json:"description"`
	DurationMinutes        *int    `json:"durationMinutes"`
	DueDaysAfterAssignment *int    `json:"dueDaysAfterAssignment"`
}

func (s *AssignmentService) CreateDefinition(req AssignmentCreateRequest) (*model.Assignment, error) {
	if _, err := s.CourseRepo.FindByID(req.CourseID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if req.BlockID != nil {
		if _, err := s.CourseRepo.FindBlock(*req.BlockID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, util.ErrBlockNotFound
			}
			return nil, err
		}
	}

	def := &model.Assignment{
		CourseID:               req.CourseID,
		BlockID:                req.BlockID,
		Title:                  req.Title,
		Description:            req.Description,
		DurationMinutes:        req.DurationMinutes,
		DueDaysAfterAssignment: req.DueDaysAfterAssignment,
	}
	if err := s.AssignmentRepo.Create(def); err != nil {
		return nil, err
	}
	return def, nil
}

func findDef(definitions []model.Assignment, id uint) *model.Assignment {
	for i := range definitions {
		if definitions[i].ID == id {
			return &definitions[i]
		}
	}
	return nil
}
