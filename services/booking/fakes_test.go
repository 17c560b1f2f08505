package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	bookingRepo "lagocruise/database/repository/booking"
	"lagocruise/models"
	"lagocruise/services/notification"
	"lagocruise/services/payment"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// fakeBookingRepo is an in-memory BookingRepository with the same conditional
// write semantics as the Mongo implementation.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *fakeBookingRepo) put(b *models.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *b
	r.bookings[b.ID] = &clone
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	clone := *booking
	r.bookings[booking.ID] = &clone
	return nil
}

func (r *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bookings[id]; ok {
		clone := *b
		return &clone, nil
	}
	return nil, nil
}

func (r *fakeBookingRepo) GetByIDForUser(id, userID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bookings[id]; ok && b.UserID == userID {
		clone := *b
		return &clone, nil
	}
	return nil, nil
}

func (r *fakeBookingRepo) GetByReference(reference string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.PaymentReference == reference {
			clone := *b
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) ListByUser(userID string, skip, limit int64) ([]models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) ListAll(skip, limit int64) ([]models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) HasOverlapping(ctx context.Context, boatID string, start, end time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.BoatID != boatID {
			continue
		}
		if b.Status != models.BookingPending && b.Status != models.BookingConfirmed {
			continue
		}
		if b.StartDate.Before(end) && b.EndDate.After(start) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) ConfirmByReference(reference, channel string, paidAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.PaymentReference == reference &&
			b.PaymentStatus == models.PaymentPending &&
			b.Status == models.BookingPending {
			b.Status = models.BookingConfirmed
			b.PaymentStatus = models.PaymentSuccessful
			b.PaymentMethod = channel
			b.PaidAt = &paidAt
			b.UpdatedAt = time.Now()
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) FailByReference(reference string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.PaymentReference == reference &&
			b.Status == models.BookingPending &&
			(b.PaymentStatus == models.PaymentPending || b.PaymentStatus == models.PaymentFailed) {
			b.Status = models.BookingAbandoned
			b.PaymentStatus = models.PaymentFailed
			b.UpdatedAt = time.Now()
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) MarkRefundedByReference(reference string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.PaymentReference == reference && b.PaymentStatus != models.PaymentRefunded {
			b.PaymentStatus = models.PaymentRefunded
			b.UpdatedAt = time.Now()
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) CancelWithRefund(id string, refund bookingRepo.RefundUpdate) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != models.BookingConfirmed || b.PaymentStatus != models.PaymentSuccessful {
		return false, nil
	}
	b.Status = models.BookingCancelled
	b.PaymentStatus = models.PaymentRefunded
	b.RefundAmount = refund.Amount
	b.RefundPercentage = refund.Percentage
	b.RefundReference = refund.Reference
	refundedAt := refund.RefundedAt
	b.RefundedAt = &refundedAt
	b.UpdatedAt = time.Now()
	return true, nil
}

func (r *fakeBookingRepo) SweepAbandoned(cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.bookings {
		if b.Status == models.BookingPending &&
			b.PaymentStatus == models.PaymentPending &&
			!b.CreatedAt.After(cutoff) {
			b.Status = models.BookingAbandoned
			b.UpdatedAt = time.Now()
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) SweepCompleted(now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.bookings {
		if b.Status == models.BookingConfirmed &&
			b.PaymentStatus == models.PaymentSuccessful &&
			!b.EndDate.After(now) {
			b.Status = models.BookingCompleted
			b.UpdatedAt = time.Now()
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) FindRecentlyUpdatedByStatus(status models.BookingStatus, since time.Time) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Status == status && !b.UpdatedAt.Before(since) {
			out = append(out, *b)
		}
	}
	return out, nil
}

// WithTransaction snapshots the store and rolls back on error, mirroring a
// Mongo transaction abort.
func (r *fakeBookingRepo) WithTransaction(ctx context.Context, fn func(sessCtx mongo.SessionContext) error) error {
	r.mu.Lock()
	snapshot := make(map[string]*models.Booking, len(r.bookings))
	for k, v := range r.bookings {
		clone := *v
		snapshot[k] = &clone
	}
	r.mu.Unlock()

	if err := fn(mongo.NewSessionContext(ctx, nil)); err != nil {
		r.mu.Lock()
		r.bookings = snapshot
		r.mu.Unlock()
		return err
	}
	return nil
}

type fakeBoatRepo struct {
	boats map[string]*models.Boat
}

func (r *fakeBoatRepo) GetByID(id string) (*models.Boat, error) {
	if b, ok := r.boats[id]; ok {
		clone := *b
		return &clone, nil
	}
	return nil, nil
}

func (r *fakeBoatRepo) ListAvailable(skip, limit int64) ([]models.Boat, int64, error) {
	var out []models.Boat
	for _, b := range r.boats {
		if b.IsAvailable {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

type fakeUserRepo struct {
	emails map[string]string
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	if email, ok := r.emails[id]; ok {
		return &models.User{ID: id, Email: email}, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetEmailByID(id string) (string, error) {
	return r.emails[id], nil
}

// fakeGateway is a scriptable payment.Gateway recording every call.
type fakeGateway struct {
	mu sync.Mutex

	initializeErr   error
	initializeCalls []payment.InitializeRequest

	verifyResult *payment.VerifyResult
	verifyErr    error
	verifyCalls  []string

	refundResult *payment.RefundResult
	refundErr    error
	refundCalls  []payment.RefundRequest
}

func (g *fakeGateway) Initialize(ctx context.Context, req payment.InitializeRequest) (*payment.InitializeResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.initializeCalls = append(g.initializeCalls, req)
	if g.initializeErr != nil {
		return nil, g.initializeErr
	}
	return &payment.InitializeResult{
		AuthorizationURL: "https://checkout.paystack.test/" + req.Reference,
		Reference:        req.Reference,
	}, nil
}

func (g *fakeGateway) Verify(ctx context.Context, reference string) (*payment.VerifyResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.verifyCalls = append(g.verifyCalls, reference)
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	if g.verifyResult == nil {
		return nil, errors.New("fakeGateway: verifyResult not set")
	}
	result := *g.verifyResult
	result.Reference = reference
	return &result, nil
}

func (g *fakeGateway) Refund(ctx context.Context, req payment.RefundRequest) (*payment.RefundResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.refundCalls = append(g.refundCalls, req)
	if g.refundErr != nil {
		return nil, g.refundErr
	}
	if g.refundResult != nil {
		return g.refundResult, nil
	}
	return &payment.RefundResult{RefundReference: "RF-" + req.Reference, Status: "processed"}, nil
}

func (g *fakeGateway) VerifyWebhookSignature(payload []byte, signature string) bool {
	return signature == "valid"
}

// fakeMailer records sent messages.
type fakeMailer struct {
	mu   sync.Mutex
	sent []notification.Message
	err  error
}

func (m *fakeMailer) Send(ctx context.Context, msg notification.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type fixture struct {
	svc     *DefaultBookingService
	repo    *fakeBookingRepo
	boats   *fakeBoatRepo
	users   *fakeUserRepo
	gateway *fakeGateway
	mailer  *fakeMailer
}

func newFixture() *fixture {
	repo := newFakeBookingRepo()
	boats := &fakeBoatRepo{boats: map[string]*models.Boat{
		"boat-1": {
			ID:           "boat-1",
			BoatName:     "Sunset Pearl",
			Capacity:     6,
			PricePerHour: 100,
			IsAvailable:  true,
		},
	}}
	users := &fakeUserRepo{emails: map[string]string{
		"user-1": "user1@example.com",
	}}
	gateway := &fakeGateway{}
	mailer := &fakeMailer{}

	return &fixture{
		svc: &DefaultBookingService{
			Repo:            repo,
			BoatRepo:        boats,
			UserRepo:        users,
			Gateway:         gateway,
			Mailer:          mailer,
			Logger:          zap.NewNop(),
			CallbackBaseURL: "http://localhost:3000",
		},
		repo:    repo,
		boats:   boats,
		users:   users,
		gateway: gateway,
		mailer:  mailer,
	}
}
