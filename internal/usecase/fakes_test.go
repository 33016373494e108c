package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"zedorolo/internal/domain/entity"
	"zedorolo/pkg/errors"
)

// In-memory repositories backing the usecase tests. The proposal fake
// reproduces the store's conditional-update semantics: the status swap only
// happens when the stored status still matches, under a single lock.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return errors.NotFound("User", nil)
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, user := range r.users {
		if role, ok := filter["role"]; ok && user.Role != role {
			continue
		}
		if status, ok := filter["status"]; ok && user.Status != status {
			continue
		}
		clone := *user
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

type fakeVehicleRepo struct {
	mu       sync.Mutex
	vehicles map[string]*entity.Vehicle
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{vehicles: make(map[string]*entity.Vehicle)}
}

func (r *fakeVehicleRepo) Create(ctx context.Context, vehicle *entity.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if vehicle.ID == "" {
		vehicle.ID = uuid.New().String()
	}
	clone := *vehicle
	r.vehicles[vehicle.ID] = &clone
	return nil
}

func (r *fakeVehicleRepo) GetByID(ctx context.Context, id string) (*entity.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	vehicle, ok := r.vehicles[id]
	if !ok {
		return nil, errors.NotFound("Vehicle", nil)
	}
	clone := *vehicle
	return &clone, nil
}

func (r *fakeVehicleRepo) Update(ctx context.Context, vehicle *entity.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vehicles[vehicle.ID]; !ok {
		return errors.NotFound("Vehicle", nil)
	}
	clone := *vehicle
	r.vehicles[vehicle.ID] = &clone
	return nil
}

func (r *fakeVehicleRepo) SoftDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	vehicle, ok := r.vehicles[id]
	if !ok {
		return errors.NotFound("Vehicle", nil)
	}
	now := time.Now()
	vehicle.DeletedAt = &now
	vehicle.Status = "deleted"
	return nil
}

func (r *fakeVehicleRepo) IncrementViews(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if vehicle, ok := r.vehicles[id]; ok {
		vehicle.Views++
	}
	return nil
}

func (r *fakeVehicleRepo) List(ctx context.Context, filter map[string]interface{}, sort string, limit, offset int) ([]*entity.Vehicle, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Vehicle
	for _, vehicle := range r.vehicles {
		if vehicle.DeletedAt != nil {
			continue
		}
		if status, ok := filter["status"]; ok && vehicle.Status != status {
			continue
		}
		if categoryID, ok := filter["categoryId"]; ok && vehicle.CategoryID != categoryID {
			continue
		}
		clone := *vehicle
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *fakeVehicleRepo) SearchByTitle(ctx context.Context, query string, filter map[string]interface{}, limit, offset int) ([]*entity.Vehicle, int64, error) {
	all, _, _ := r.List(ctx, filter, "", 0, 0)
	var out []*entity.Vehicle
	for _, vehicle := range all {
		if strings.Contains(strings.ToLower(vehicle.Title), strings.ToLower(query)) {
			out = append(out, vehicle)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeVehicleRepo) ListByOwnerID(ctx context.Context, ownerID string, status string, limit, offset int) ([]*entity.Vehicle, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Vehicle
	for _, vehicle := range r.vehicles {
		if vehicle.OwnerID != ownerID || vehicle.DeletedAt != nil {
			continue
		}
		if status != "" && vehicle.Status != status {
			continue
		}
		clone := *vehicle
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories map[string]*entity.VehicleCategory
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[string]*entity.VehicleCategory)}
}

func (r *fakeCategoryRepo) Create(ctx context.Context, category *entity.VehicleCategory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	clone := *category
	r.categories[category.ID] = &clone
	return nil
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id string) (*entity.VehicleCategory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	category, ok := r.categories[id]
	if !ok {
		return nil, errors.NotFound("Vehicle category", nil)
	}
	clone := *category
	return &clone, nil
}

func (r *fakeCategoryRepo) GetBySlug(ctx context.Context, slug string) (*entity.VehicleCategory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, category := range r.categories {
		if category.Slug == slug {
			clone := *category
			return &clone, nil
		}
	}
	return nil, errors.NotFound("Vehicle category", nil)
}

func (r *fakeCategoryRepo) Update(ctx context.Context, category *entity.VehicleCategory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *category
	r.categories[category.ID] = &clone
	return nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.VehicleCategory, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.VehicleCategory
	for _, category := range r.categories {
		if status != "" && category.Status != status {
			continue
		}
		clone := *category
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

type fakeProposalRepo struct {
	mu        sync.Mutex
	proposals map[string]*entity.Proposal
	messages  map[string][]*entity.Message
}

func newFakeProposalRepo() *fakeProposalRepo {
	return &fakeProposalRepo{
		proposals: make(map[string]*entity.Proposal),
		messages:  make(map[string][]*entity.Message),
	}
}

func (r *fakeProposalRepo) Create(ctx context.Context, proposal *entity.Proposal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if proposal.ID == "" {
		proposal.ID = uuid.New().String()
	}
	now := time.Now()
	proposal.CreatedAt = now
	proposal.UpdatedAt = now
	clone := *proposal
	r.proposals[proposal.ID] = &clone
	return nil
}

func (r *fakeProposalRepo) GetByID(ctx context.Context, id string) (*entity.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	proposal, ok := r.proposals[id]
	if !ok {
		return nil, errors.NotFound("Proposal", nil)
	}
	clone := *proposal
	return &clone, nil
}

func (r *fakeProposalRepo) UpdateStatus(ctx context.Context, id string, from, to entity.ProposalStatus, extra map[string]interface{}) (*entity.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	proposal, ok := r.proposals[id]
	if !ok {
		return nil, errors.NotFound("Proposal", nil)
	}
	if proposal.Status != from {
		return nil, errors.StaleState("This proposal was already updated")
	}

	proposal.Status = to
	proposal.UpdatedAt = time.Now()
	for path, value := range extra {
		switch path {
		case "offerAmount":
			proposal.OfferAmount = value.(float64)
		case "tradePlusAmount":
			proposal.TradePlusAmount = value.(float64)
		case "counteredBy":
			proposal.CounteredBy = value.(string)
		case "message":
			proposal.Message = value.(string)
		case "respondedAt":
			t := value.(time.Time)
			proposal.RespondedAt = &t
		}
	}

	clone := *proposal
	return &clone, nil
}

func (r *fakeProposalRepo) FindOpen(ctx context.Context, proposerID, vehicleID string) (*entity.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, proposal := range r.proposals {
		if proposal.ProposerID == proposerID && proposal.VehicleID == vehicleID && !proposal.Status.Terminal() {
			clone := *proposal
			return &clone, nil
		}
	}
	return nil, errors.NotFound("Proposal", nil)
}

func (r *fakeProposalRepo) ListByUserID(ctx context.Context, userID string, role string, status string, limit, offset int) ([]*entity.Proposal, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Proposal
	for _, proposal := range r.proposals {
		match := false
		switch role {
		case "proposer":
			match = proposal.ProposerID == userID
		case "seller":
			match = proposal.SellerID == userID
		default:
			match = proposal.IsParty(userID)
		}
		if !match {
			continue
		}
		if status != "" && string(proposal.Status) != status {
			continue
		}
		clone := *proposal
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (r *fakeProposalRepo) CreateMessage(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.CreatedAt = time.Now()
	clone := *message
	r.messages[message.ProposalID] = append(r.messages[message.ProposalID], &clone)
	return nil
}

func (r *fakeProposalRepo) ListMessages(ctx context.Context, proposalID string, limit, offset int) ([]*entity.Message, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	thread := r.messages[proposalID]
	out := make([]*entity.Message, 0, len(thread))
	for _, message := range thread {
		clone := *message
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProposalRepo) MarkMessagesRead(ctx context.Context, proposalID, readerID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	marked := 0
	for _, message := range r.messages[proposalID] {
		if message.IsRead || message.SenderID == readerID {
			continue
		}
		message.IsRead = true
		marked++
	}
	return marked, nil
}

type fakeKYCRepo struct {
	mu            sync.Mutex
	verifications map[string]*entity.KYCVerification
}

func newFakeKYCRepo() *fakeKYCRepo {
	return &fakeKYCRepo{verifications: make(map[string]*entity.KYCVerification)}
}

func (r *fakeKYCRepo) Create(ctx context.Context, verification *entity.KYCVerification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if verification.ID == "" {
		verification.ID = uuid.New().String()
	}
	clone := *verification
	r.verifications[verification.ID] = &clone
	return nil
}

func (r *fakeKYCRepo) GetByID(ctx context.Context, id string) (*entity.KYCVerification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	verification, ok := r.verifications[id]
	if !ok {
		return nil, errors.NotFound("KYC verification", nil)
	}
	clone := *verification
	return &clone, nil
}

func (r *fakeKYCRepo) GetByUserID(ctx context.Context, userID string) (*entity.KYCVerification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, verification := range r.verifications {
		if verification.UserID == userID {
			clone := *verification
			return &clone, nil
		}
	}
	return nil, errors.NotFound("KYC verification", nil)
}

func (r *fakeKYCRepo) Update(ctx context.Context, verification *entity.KYCVerification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *verification
	r.verifications[verification.ID] = &clone
	return nil
}

func (r *fakeKYCRepo) ListByStatus(ctx context.Context, status entity.KYCStatus, limit, offset int) ([]*entity.KYCVerification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.KYCVerification
	for _, verification := range r.verifications {
		if status != "" && verification.Status != status {
			continue
		}
		clone := *verification
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []*entity.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	notification.CreatedAt = time.Now()
	clone := *notification
	r.notifications = append(r.notifications, &clone)
	return nil
}

func (r *fakeNotificationRepo) ListByUserID(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Notification
	for _, notification := range r.notifications {
		if notification.UserID != userID {
			continue
		}
		if unreadOnly && notification.IsRead {
			continue
		}
		clone := *notification
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *fakeNotificationRepo) CountUnread(ctx context.Context, userID string) (int64, error) {
	list, total, _ := r.ListByUserID(ctx, userID, true, 0, 0)
	_ = list
	return total, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, notification := range r.notifications {
		if notification.ID == id {
			if notification.UserID != userID {
				return errors.Forbidden("You don't have permission to update this notification", nil)
			}
			notification.IsRead = true
			return nil
		}
	}
	return errors.NotFound("Notification", nil)
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, notification := range r.notifications {
		if notification.UserID == userID {
			notification.IsRead = true
		}
	}
	return nil
}

// typesByUser reports the notification types delivered to a user, in order.
func (r *fakeNotificationRepo) typesByUser(userID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, notification := range r.notifications {
		if notification.UserID == userID {
			out = append(out, notification.Type)
		}
	}
	return out
}

type fakeFileStorage struct{}

func (fakeFileStorage) GenerateSignedDownloadURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	return "https://signed.example.com/" + objectName, nil
}
