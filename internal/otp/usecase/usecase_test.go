package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/otpsender/internal/otp/entity"
	"github.com/shandysiswandi/otpsender/internal/pkg/channel"
	"github.com/shandysiswandi/otpsender/internal/pkg/goerror"
	"github.com/shandysiswandi/otpsender/internal/pkg/idempotency"
	"github.com/shandysiswandi/otpsender/internal/pkg/instrument"
	"github.com/shandysiswandi/otpsender/internal/pkg/jwt"
	"github.com/shandysiswandi/otpsender/internal/pkg/validator"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory repoDB. Status flips go through the same
// compare-and-set rules as the SQL implementation.
type fakeRepo struct {
	mu      sync.Mutex
	configs []entity.Config
	codes   map[string]entity.Code
	nextID  int64

	createCodeErr error
	consumeErr    error
	expireErrIDs  map[string]error
	listErr       error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{codes: map[string]entity.Code{}, expireErrIDs: map[string]error{}}
}

func (r *fakeRepo) GetEarliestConfig(context.Context) (*entity.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.configs) == 0 {
		return nil, goerror.ErrNotFound
	}

	earliest := r.configs[0]
	for _, c := range r.configs[1:] {
		if c.CreatedAt.Before(earliest.CreatedAt) ||
			(c.CreatedAt.Equal(earliest.CreatedAt) && c.ID < earliest.ID) {
			earliest = c
		}
	}

	return &earliest, nil
}

func (r *fakeRepo) CreateConfig(_ context.Context, in entity.Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	in.ID = r.nextID
	r.configs = append(r.configs, in)

	return nil
}

func (r *fakeRepo) UpdateConfig(_ context.Context, id int64, codeLength, ttlSeconds int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, c := range r.configs {
		if c.ID == id {
			r.configs[i].CodeLength = codeLength
			r.configs[i].TTLSeconds = ttlSeconds
			return nil
		}
	}

	return goerror.ErrNotFound
}

func (r *fakeRepo) CreateCode(_ context.Context, in entity.Code) error {
	if r.createCodeErr != nil {
		return r.createCodeErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes[in.ID] = in

	return nil
}

func (r *fakeRepo) GetActiveCode(_ context.Context, userID int64, operationID, value string) (*entity.Code, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var found *entity.Code
	for _, c := range r.codes {
		if c.UserID != userID || c.OperationID != operationID ||
			c.Value != value || c.Status != entity.CodeStatusActive {
			continue
		}
		if found == nil || c.CreatedAt.After(found.CreatedAt) {
			cc := c
			found = &cc
		}
	}
	if found == nil {
		return nil, goerror.ErrNotFound
	}

	return found, nil
}

func (r *fakeRepo) GetExpiredActiveCodes(_ context.Context, ref time.Time, limit int32) ([]entity.Code, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []entity.Code
	for _, c := range r.codes {
		if c.Status == entity.CodeStatusActive && !ref.Before(c.ExpiresAt) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if int32(len(out)) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (r *fakeRepo) GetCodeList(_ context.Context, filter entity.CodeListFilter) ([]entity.Code, int64, error) {
	if r.listErr != nil {
		return nil, 0, r.listErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var all []entity.Code
	for _, c := range r.codes {
		if filter.IsFilterByUser && c.UserID != filter.UserID {
			continue
		}
		if filter.IsFilterByStatus && c.Status != filter.Status {
			continue
		}
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	if int(filter.Offset) >= len(all) {
		return nil, total, nil
	}
	all = all[filter.Offset:]
	if int32(len(all)) > filter.Limit {
		all = all[:filter.Limit]
	}

	return all, total, nil
}

func (r *fakeRepo) ConsumeCode(_ context.Context, id string, usedAt time.Time) (bool, error) {
	if r.consumeErr != nil {
		return false, r.consumeErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.codes[id]
	if !ok || c.Status != entity.CodeStatusActive {
		return false, nil
	}
	c.Status = entity.CodeStatusUsed
	c.UsedAt = &usedAt
	r.codes[id] = c

	return true, nil
}

func (r *fakeRepo) ExpireCode(_ context.Context, id string) (bool, error) {
	if err, ok := r.expireErrIDs[id]; ok {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.codes[id]
	if !ok || c.Status != entity.CodeStatusActive {
		return false, nil
	}
	c.Status = entity.CodeStatusExpired
	r.codes[id] = c

	return true, nil
}

func (r *fakeRepo) DeleteUserCodes(_ context.Context, userID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for id, c := range r.codes {
		if c.UserID == userID {
			delete(r.codes, id)
			deleted++
		}
	}

	return deleted, nil
}

func (r *fakeRepo) code(t *testing.T, id string) entity.Code {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.codes[id]
	require.True(t, ok, "code %s not found", id)

	return c
}

type fakePublisher struct {
	mu       sync.Mutex
	issued   []OtpIssuedEvent
	consumed []OtpConsumedEvent
	sweeps   []SweepCompletedEvent
}

func (p *fakePublisher) PublishOtpIssued(_ context.Context, msg OtpIssuedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.issued = append(p.issued, msg)

	return nil
}

func (p *fakePublisher) PublishOtpConsumed(_ context.Context, msg OtpConsumedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.consumed = append(p.consumed, msg)

	return nil
}

func (p *fakePublisher) PublishSweepCompleted(_ context.Context, msg SweepCompletedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sweeps = append(p.sweeps, msg)

	return nil
}

// passIdem runs the wrapped function directly.
type passIdem struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (i *passIdem) Acquire(context.Context, string, time.Duration) (idempotency.State, error) {
	return idempotency.StateNone, nil
}

func (i *passIdem) MarkCompleted(context.Context, string, time.Duration) error { return nil }
func (i *passIdem) MarkFailed(context.Context, string, time.Duration) error   { return nil }

func (i *passIdem) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	i.mu.Lock()
	i.keys = append(i.keys, key)
	i.mu.Unlock()

	if i.err != nil {
		return i.err
	}

	return fn(ctx)
}

type stubChannel struct {
	name      string
	available bool
	sendErr   error

	mu    sync.Mutex
	sent  []string
	codes []string
}

func (c *stubChannel) Name() string    { return c.name }
func (c *stubChannel) Available() bool { return c.available }
func (c *stubChannel) Send(_ context.Context, destination, code string) error {
	if c.sendErr != nil {
		return c.sendErr
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, destination)
	c.codes = append(c.codes, code)

	return nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type seqUUID struct {
	mu sync.Mutex
	n  int
}

func (u *seqUUID) Generate() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.n++

	return fmt.Sprintf("code-%d", u.n)
}

type fixedGenerator struct {
	value   string
	lengths []int
}

func (g *fixedGenerator) Generate(length int) (string, error) {
	g.lengths = append(g.lengths, length)

	return g.value, nil
}

type ucFixture struct {
	uc    *Usecase
	repo  *fakeRepo
	pub   *fakePublisher
	idem  *passIdem
	email *stubChannel
	clock fixedClock
	gen   *fixedGenerator
}

func newFixture(t *testing.T) *ucFixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	f := &ucFixture{
		repo:  newFakeRepo(),
		pub:   &fakePublisher{},
		idem:  &passIdem{},
		email: &stubChannel{name: channel.NameEmail, available: true},
		clock: fixedClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
		gen:   &fixedGenerator{value: "482915"},
	}

	f.uc = New(Dependency{
		RepoDB:        f.repo,
		RepoMessaging: f.pub,
		Channels:      channel.NewRegistry(f.email, &stubChannel{name: channel.NameSMS}),
		Idempotency:   f.idem,
		Validator:     v,
		Generator:     f.gen,
		UUID:          &seqUUID{},
		Clock:         f.clock,
		Instrument:    instrument.NewNoop(),
	})

	return f
}

func adminContext() context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: 1, Role: jwt.RoleAdmin})
}

func userContext() context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: 2, Role: "user"})
}

func requireErrCode(t *testing.T, err error, code goerror.Code) {
	t.Helper()

	var ge *goerror.Error
	require.ErrorAs(t, err, &ge)
	require.Equal(t, code, ge.Code())
}
