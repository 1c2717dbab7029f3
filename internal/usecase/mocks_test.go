package usecase

import (
	"context"
	"time"

	"medivuno-api/internal/delivery/websocket"
	"medivuno-api/internal/domain/entity"

	"github.com/google/uuid"
)

// Hand-written fakes for the repository and service interfaces. Each fake
// records enough of what was asked of it for tests to assert on.

type fakeUserRepo struct {
	byID      map[uuid.UUID]*entity.User
	byEmail   map[string]*entity.User
	createErr error
	created   []*entity.User
	updated   []*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[uuid.UUID]*entity.User),
		byEmail: make(map[string]*entity.User),
	}
}

func (f *fakeUserRepo) add(user *entity.User) {
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
}

func (f *fakeUserRepo) CreateWithPatientProfile(ctx context.Context, user *entity.User, profile *entity.PatientProfile) error {
	if f.createErr != nil {
		return f.createErr
	}
	user.ID = uuid.New()
	profile.UserID = user.ID
	f.created = append(f.created, user)
	f.add(user)
	return nil
}

func (f *fakeUserRepo) CreateWithDoctorProfile(ctx context.Context, user *entity.User, profile *entity.DoctorProfile) error {
	if f.createErr != nil {
		return f.createErr
	}
	user.ID = uuid.New()
	profile.UserID = user.ID
	f.created = append(f.created, user)
	f.add(user)
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return f.byID[id], nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.updated = append(f.updated, user)
	return nil
}

func (f *fakeUserRepo) FindAllPaginated(ctx context.Context, page, limit int) ([]entity.User, int64, error) {
	users := make([]entity.User, 0, len(f.byID))
	for _, u := range f.byID {
		users = append(users, *u)
	}
	return users, int64(len(users)), nil
}

func (f *fakeUserRepo) UpdateActive(ctx context.Context, id uuid.UUID, active bool) (int64, error) {
	user, ok := f.byID[id]
	if !ok {
		return 0, nil
	}
	user.IsActive = active
	return 1, nil
}

type fakeDoctorRepo struct {
	profiles map[uuid.UUID]*entity.DoctorProfile
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{profiles: make(map[uuid.UUID]*entity.DoctorProfile)}
}

func (f *fakeDoctorRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error) {
	return f.profiles[userID], nil
}

func (f *fakeDoctorRepo) Update(ctx context.Context, profile *entity.DoctorProfile) error {
	f.profiles[profile.UserID] = profile
	return nil
}

func (f *fakeDoctorRepo) Search(ctx context.Context, filter *entity.DoctorFilter) ([]entity.DoctorProfile, error) {
	var result []entity.DoctorProfile
	for _, p := range f.profiles {
		if p.IsApproved() {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (f *fakeDoctorRepo) FindByApproval(ctx context.Context, status entity.ApprovalStatus, page, limit int) ([]entity.DoctorProfile, int64, error) {
	var result []entity.DoctorProfile
	for _, p := range f.profiles {
		if p.ApprovalStatus == status {
			result = append(result, *p)
		}
	}
	return result, int64(len(result)), nil
}

func (f *fakeDoctorRepo) UpdateApproval(ctx context.Context, userID uuid.UUID, status entity.ApprovalStatus) (int64, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return 0, nil
	}
	profile.ApprovalStatus = status
	return 1, nil
}

type fakePatientRepo struct {
	profiles map[uuid.UUID]*entity.PatientProfile
	updated  []*entity.PatientProfile
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{profiles: make(map[uuid.UUID]*entity.PatientProfile)}
}

func (f *fakePatientRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.PatientProfile, error) {
	return f.profiles[userID], nil
}

func (f *fakePatientRepo) Update(ctx context.Context, profile *entity.PatientProfile) error {
	f.updated = append(f.updated, profile)
	return nil
}

type fakeSlotRepo struct {
	slots       map[uuid.UUID]*entity.AvailabilitySlot
	upcoming    []entity.AvailabilitySlot
	between     []entity.AvailabilitySlot
	created     []*entity.AvailabilitySlot
	batches     [][]entity.AvailabilitySlot
	deleted     []uuid.UUID
	deleteCount int64
	bulkDeleted int64
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: make(map[uuid.UUID]*entity.AvailabilitySlot), deleteCount: 1}
}

func (f *fakeSlotRepo) Create(ctx context.Context, slot *entity.AvailabilitySlot) error {
	slot.ID = uuid.New()
	f.created = append(f.created, slot)
	f.slots[slot.ID] = slot
	return nil
}

func (f *fakeSlotRepo) CreateBatch(ctx context.Context, slots []entity.AvailabilitySlot) error {
	f.batches = append(f.batches, slots)
	return nil
}

func (f *fakeSlotRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.AvailabilitySlot, error) {
	return f.slots[id], nil
}

func (f *fakeSlotRepo) FindUpcomingByDoctor(ctx context.Context, doctorID uuid.UUID, from time.Time, openOnly bool) ([]entity.AvailabilitySlot, error) {
	return f.upcoming, nil
}

func (f *fakeSlotRepo) FindByDoctorBetween(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]entity.AvailabilitySlot, error) {
	return f.between, nil
}

func (f *fakeSlotRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	f.deleted = append(f.deleted, id)
	return f.deleteCount, nil
}

func (f *fakeSlotRepo) DeleteAllOpenByDoctor(ctx context.Context, doctorID uuid.UUID) (int64, error) {
	return f.bulkDeleted, nil
}

type fakeAppointmentRepo struct {
	byID          map[uuid.UUID]*entity.Appointment
	bookErr       error
	booked        []*entity.Appointment
	rescheduleErr error
	rescheduled   bool
	statusUpdated []*entity.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{byID: make(map[uuid.UUID]*entity.Appointment)}
}

func (f *fakeAppointmentRepo) Book(ctx context.Context, appointment *entity.Appointment) error {
	if f.bookErr != nil {
		return f.bookErr
	}
	appointment.ID = uuid.New()
	f.booked = append(f.booked, appointment)
	f.byID[appointment.ID] = appointment
	return nil
}

func (f *fakeAppointmentRepo) Reschedule(ctx context.Context, appointment *entity.Appointment, oldSlotID, newSlotID uuid.UUID) error {
	if f.rescheduleErr != nil {
		return f.rescheduleErr
	}
	f.rescheduled = true
	return nil
}

func (f *fakeAppointmentRepo) UpdateStatus(ctx context.Context, appointment *entity.Appointment) error {
	f.statusUpdated = append(f.statusUpdated, appointment)
	return nil
}

func (f *fakeAppointmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	return f.byID[id], nil
}

func (f *fakeAppointmentRepo) FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) FindStartingBetween(ctx context.Context, from, to time.Time) ([]entity.Appointment, error) {
	return nil, nil
}

type fakeNotificationRepo struct {
	byID         map[uuid.UUID]*entity.Notification
	created      []*entity.Notification
	feed         []entity.Notification
	total        int64
	lastSkip     int
	lastTake     int
	lastArchived bool
	updated      []*entity.Notification
	markAllRead  int64
	deleteCount  int64
	hasReminder  bool
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{byID: make(map[uuid.UUID]*entity.Notification), deleteCount: 1}
}

func (f *fakeNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	notification.ID = uuid.New()
	f.created = append(f.created, notification)
	f.byID[notification.ID] = notification
	return nil
}

func (f *fakeNotificationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	return f.byID[id], nil
}

func (f *fakeNotificationRepo) FindByUser(ctx context.Context, userID uuid.UUID, archived bool, skip, take int) ([]entity.Notification, int64, error) {
	f.lastArchived = archived
	f.lastSkip = skip
	f.lastTake = take
	return f.feed, f.total, nil
}

func (f *fakeNotificationRepo) Update(ctx context.Context, notification *entity.Notification) error {
	f.updated = append(f.updated, notification)
	return nil
}

func (f *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return f.markAllRead, nil
}

func (f *fakeNotificationRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	return f.deleteCount, nil
}

func (f *fakeNotificationRepo) HasReminderFor(ctx context.Context, appointmentID uuid.UUID) (bool, error) {
	return f.hasReminder, nil
}

type fakeSettingsRepo struct {
	settings map[uuid.UUID]*entity.NotificationSettings
	created  []*entity.NotificationSettings
	updated  []*entity.NotificationSettings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: make(map[uuid.UUID]*entity.NotificationSettings)}
}

func (f *fakeSettingsRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.NotificationSettings, error) {
	return f.settings[userID], nil
}

func (f *fakeSettingsRepo) Create(ctx context.Context, settings *entity.NotificationSettings) error {
	f.created = append(f.created, settings)
	f.settings[settings.UserID] = settings
	return nil
}

func (f *fakeSettingsRepo) Update(ctx context.Context, settings *entity.NotificationSettings) error {
	f.updated = append(f.updated, settings)
	f.settings[settings.UserID] = settings
	return nil
}

type fakeSlotHolder struct {
	acquireOK  bool
	acquireErr error
	acquired   []uuid.UUID
	released   []uuid.UUID
}

func newFakeSlotHolder() *fakeSlotHolder {
	return &fakeSlotHolder{acquireOK: true}
}

func (f *fakeSlotHolder) Acquire(ctx context.Context, slotID, userID uuid.UUID) (bool, error) {
	f.acquired = append(f.acquired, slotID)
	return f.acquireOK, f.acquireErr
}

func (f *fakeSlotHolder) Release(ctx context.Context, slotID uuid.UUID) error {
	f.released = append(f.released, slotID)
	return nil
}

type fakeAuditService struct {
	actions []string
}

func (f *fakeAuditService) LogAction(ctx context.Context, userID *uuid.UUID, action string, entityName string, entityID string, detail interface{}) error {
	f.actions = append(f.actions, action)
	return nil
}

type fakePublisher struct {
	users  []uuid.UUID
	events []websocket.Event
}

func (f *fakePublisher) Publish(userID uuid.UUID, event websocket.Event) {
	f.users = append(f.users, userID)
	f.events = append(f.events, event)
}
