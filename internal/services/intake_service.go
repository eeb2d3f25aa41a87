// internal/services/intake_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/credara/credentialing-backend/internal/config"
	"github.com/credara/credentialing-backend/internal/intake"
	"github.com/credara/credentialing-backend/internal/models"
	"github.com/credara/credentialing-backend/internal/utils"
)

// ErrAlreadySubmitted is returned when a client row already exists for the
// submitting user. Submission is not idempotent by replay; the duplicate is
// rejected before any write happens.
var ErrAlreadySubmitted = errors.New("intake already submitted for this account")

type IntakeService struct {
	db           *gorm.DB
	cfg          *config.Config
	notification *NotificationService

	mu       sync.Mutex
	sessions map[uuid.UUID]*wizardSession
}

// wizardSession is one user's in-flight intake: the draft plus the step
// position. Sessions live in memory; the durable record is created only at
// submission.
type wizardSession struct {
	Draft     *intake.Draft
	Navigator *intake.Navigator
	Editing   bool
}

type SessionState struct {
	Step      int            `json:"step"`
	StepName  string         `json:"step_name"`
	CanSubmit bool           `json:"can_submit"`
	Editing   bool           `json:"editing"`
	Draft     *intake.Draft  `json:"draft"`
	Fields    []intake.Field `json:"fields"`
}

type SetFieldRequest struct {
	Path  string `json:"path" validate:"required"`
	Value string `json:"value"`
}

// yesNoPaths are the draft fields that only take yes/no answers.
// has_physical_location is excluded: its domain is yes/remote.
var yesNoPaths = map[string]bool{
	"has_npi":                       true,
	"has_business_entity_new_state": true,
	"wants_medicaid":                true,
	"has_caqh":                      true,
	"caqh_updated":                  true,
	"has_prof_liability":            true,
	"has_gen_liability":             true,
	"has_bcba_cert_docs":            true,
	"has_state_licenses":            true,
	"has_current_cv":                true,
	"has_references":                true,
}

type npiValue struct {
	NPI string `validate:"npi"`
}

type yesNoValue struct {
	Answer string `validate:"yesno"`
}

// validateFieldValue rejects malformed values before they reach the draft.
// Most paths are free-form; NPI numbers and yes/no answers are not.
func validateFieldValue(path, value string) error {
	var err error
	switch {
	case path == "npi_number" || path == "primary_provider.individual_npi":
		err = utils.ValidateStruct(&npiValue{NPI: value})
	case yesNoPaths[path]:
		err = utils.ValidateStruct(&yesNoValue{Answer: value})
	}

	if errs := utils.GetValidationErrors(err); len(errs) > 0 {
		return errors.New(errs[0].Message)
	}
	return nil
}

type ToggleFieldRequest struct {
	Field   string `json:"field" validate:"required"`
	Value   string `json:"value" validate:"required"`
	Checked bool   `json:"checked"`
}

type AddLicenseRequest struct {
	State         string `json:"state" validate:"required"`
	LicenseNumber string `json:"license_number" validate:"required"`
}

func NewIntakeService(db *gorm.DB, cfg *config.Config, notification *NotificationService) *IntakeService {
	return &IntakeService{
		db:           db,
		cfg:          cfg,
		notification: notification,
		sessions:     make(map[uuid.UUID]*wizardSession),
	}
}

// StartSession opens (or resumes) the wizard for a user. When a client row
// already exists the session enters edit mode with the draft pre-populated.
func (s *IntakeService) StartSession(userID uuid.UUID, userEmail string) (*SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[userID]; ok {
		return s.stateLocked(session), nil
	}

	session := &wizardSession{
		Draft:     intake.NewDraft(userEmail),
		Navigator: intake.NewNavigator(),
	}

	var client models.Client
	err := s.db.Where("user_id = ?", userID).First(&client).Error
	if err == nil {
		session.Draft = intake.DraftFromClient(&client)
		session.Editing = true
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	s.sessions[userID] = session
	return s.stateLocked(session), nil
}

func (s *IntakeService) GetSession(userID uuid.UUID) (*SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return nil, errors.New("no intake session")
	}
	return s.stateLocked(session), nil
}

func (s *IntakeService) SetField(userID uuid.UUID, req *SetFieldRequest) (*SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return nil, errors.New("no intake session")
	}

	if err := validateFieldValue(req.Path, req.Value); err != nil {
		return nil, err
	}
	if err := session.Draft.Set(req.Path, req.Value); err != nil {
		return nil, err
	}
	return s.stateLocked(session), nil
}

func (s *IntakeService) ToggleField(userID uuid.UUID, req *ToggleFieldRequest) (*SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return nil, errors.New("no intake session")
	}

	if err := session.Draft.Toggle(req.Field, req.Value, req.Checked); err != nil {
		return nil, err
	}
	return s.stateLocked(session), nil
}

func (s *IntakeService) AddLicense(userID uuid.UUID, req *AddLicenseRequest) (*SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return nil, errors.New("no intake session")
	}

	session.Draft.AddLicense(req.State, req.LicenseNumber)
	return s.stateLocked(session), nil
}

func (s *IntakeService) NextStep(userID uuid.UUID) (*SessionState, error) {
	return s.navigate(userID, func(n *intake.Navigator) { n.Next() })
}

func (s *IntakeService) PrevStep(userID uuid.UUID) (*SessionState, error) {
	return s.navigate(userID, func(n *intake.Navigator) { n.Prev() })
}

func (s *IntakeService) navigate(userID uuid.UUID, move func(*intake.Navigator)) (*SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return nil, errors.New("no intake session")
	}

	move(session.Navigator)
	return s.stateLocked(session), nil
}

// Submit translates the session draft and executes the write plan. First
// submissions run the full multi-entity sequence; edit-mode sessions update
// the existing client row only.
func (s *IntakeService) Submit(ctx context.Context, userID uuid.UUID) (*models.Client, error) {
	s.mu.Lock()
	session, ok := s.sessions[userID]
	s.mu.Unlock()
	if !ok {
		return nil, errors.New("no intake session")
	}

	if !session.Navigator.CanSubmit() {
		return nil, errors.New("submission is only available on the review step")
	}

	plan, err := intake.Translate(session.Draft, userID)
	if err != nil {
		return nil, err
	}

	var client *models.Client
	if session.Editing {
		client, err = s.resubmit(ctx, userID, plan)
	} else {
		client, err = s.execute(ctx, userID, plan)
	}
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()

	// Confirmation email (async)
	go func() {
		var user models.User
		if err := s.db.First(&user, userID).Error; err != nil {
			return
		}
		if err := s.notification.SendIntakeReceivedEmail(&user, client); err != nil {
			logrus.WithError(err).Error("Failed to send intake confirmation email")
		}
	}()

	return client, nil
}

// execute runs the write plan in sequence. The client insert comes first and
// produces the ID every dependent write is bound to. Failures after the
// client insert trigger compensation: completed writes are deleted in reverse
// order, and if compensation itself fails the client row is marked partial so
// an operator can reconcile it.
func (s *IntakeService) execute(ctx context.Context, userID uuid.UUID, plan *intake.WritePlan) (*models.Client, error) {
	db := s.db.WithContext(ctx)

	// Duplicate guard: one client row per user, checked before any write.
	var count int64
	if err := db.Model(&models.Client{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, ErrAlreadySubmitted
	}

	if err := db.Create(&plan.Client).Error; err != nil {
		// Nothing was written; no partial state to clean up.
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	clientID := plan.Client.ID

	plan.Provider.ClientID = clientID
	if plan.Insurance != nil {
		plan.Insurance.ClientID = clientID
	}
	for i := range plan.TargetPayers {
		plan.TargetPayers[i].ClientID = clientID
	}
	plan.IntakeStatus.ClientID = clientID
	plan.Timeline.ClientID = clientID

	var completed []intake.EntityWrite
	for _, write := range plan.Dependents() {
		if err := db.Create(write.Payload).Error; err != nil {
			s.compensate(clientID, completed)
			return nil, fmt.Errorf("failed to write %s: %w", write.Collection, err)
		}
		completed = append(completed, write)
	}

	return &plan.Client, nil
}

// compensate deletes the completed writes in reverse order, then the client
// row itself. Compensation runs on the base connection: the submit context
// may already be dead.
func (s *IntakeService) compensate(clientID uuid.UUID, completed []intake.EntityWrite) {
	failed := false

	for i := len(completed) - 1; i >= 0; i-- {
		write := completed[i]
		var err error
		switch write.Collection {
		case intake.CollectionTargetPayers:
			err = s.db.Where("client_id = ?", clientID).Delete(&models.TargetPayer{}).Error
		default:
			err = s.db.Delete(write.Payload).Error
		}
		if err != nil {
			failed = true
			logrus.WithError(err).WithFields(logrus.Fields{
				"client_id":  clientID,
				"collection": write.Collection,
			}).Error("Compensation delete failed")
		}
	}

	if failed {
		// Leave the client row as a marker for manual reconciliation.
		if err := s.db.Model(&models.Client{}).Where("id = ?", clientID).
			Update("status", models.ClientStatusPartial).Error; err != nil {
			logrus.WithError(err).WithField("client_id", clientID).Error("Failed to mark client partial")
		}
		return
	}

	if err := s.db.Delete(&models.Client{}, clientID).Error; err != nil {
		logrus.WithError(err).WithField("client_id", clientID).Error("Failed to delete client during compensation")
	}
}

// resubmit is the edit-mode path: a single update of the existing client row.
// Satellite records are not touched.
func (s *IntakeService) resubmit(ctx context.Context, userID uuid.UUID, plan *intake.WritePlan) (*models.Client, error) {
	db := s.db.WithContext(ctx)

	var existing models.Client
	if err := db.Where("user_id = ?", userID).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("client not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updated := plan.Client
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.Status = models.ClientStatusIntakeComplete

	if err := db.Save(&updated).Error; err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	return &updated, nil
}

// Fields evaluates the conditional renderer for an arbitrary step of the
// session draft, for clients that render steps out of order (review page).
func (s *IntakeService) Fields(userID uuid.UUID, step int) ([]intake.Field, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return nil, errors.New("no intake session")
	}
	if step < intake.FirstStep || step > intake.LastStep {
		return nil, errors.New("invalid step")
	}
	return intake.VisibleFields(step, session.Draft), nil
}

func (s *IntakeService) stateLocked(session *wizardSession) *SessionState {
	return &SessionState{
		Step:      session.Navigator.Current(),
		StepName:  session.Navigator.Name(),
		CanSubmit: session.Navigator.CanSubmit(),
		Editing:   session.Editing,
		Draft:     session.Draft,
		Fields:    intake.VisibleFields(session.Navigator.Current(), session.Draft),
	}
}
