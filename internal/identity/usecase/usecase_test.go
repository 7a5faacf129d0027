package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/otpsender/internal/identity/entity"
	"github.com/shandysiswandi/otpsender/internal/pkg/goerror"
	"github.com/shandysiswandi/otpsender/internal/pkg/instrument"
	"github.com/shandysiswandi/otpsender/internal/pkg/jwt"
	"github.com/shandysiswandi/otpsender/internal/pkg/validator"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[int64]entity.User
	passwords map[int64]string

	createErr error
	listErr   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]entity.User{}, passwords: map[int64]string{}}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user entity.User, passwordHash string) error {
	if r.createErr != nil {
		return r.createErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return goerror.ErrConflict
		}
	}
	r.users[user.ID] = user
	r.passwords[user.ID] = passwordHash

	return nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*entity.UserCredentialInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email && u.DeletedAt == nil {
			return &entity.UserCredentialInfo{
				ID:       u.ID,
				Email:    u.Email,
				Role:     u.Role,
				Status:   u.Status,
				Password: r.passwords[u.ID],
			}, nil
		}
	}

	return nil, goerror.ErrNotFound
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, goerror.ErrNotFound
	}

	return &u, nil
}

func (r *fakeUserRepo) GetUserList(_ context.Context, filter entity.UserListFilter) ([]entity.User, int64, error) {
	if r.listErr != nil {
		return nil, 0, r.listErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var all []entity.User
	for _, u := range r.users {
		if u.DeletedAt != nil {
			continue
		}
		if filter.IsFilterBySearch {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(u.Email), needle) &&
				!strings.Contains(strings.ToLower(u.FullName), needle) {
				continue
			}
		}
		all = append(all, u)
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

func (r *fakeUserRepo) MarkUserDeleted(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return goerror.ErrNotFound
	}
	now := time.Now()
	u.DeletedAt = &now
	u.Status = entity.UserStatusInactive
	r.users[id] = u

	return nil
}

type fakePurger struct {
	mu     sync.Mutex
	purged []int64
	err    error
}

func (p *fakePurger) PurgeUserCodes(_ context.Context, userID int64) (int64, error) {
	if p.err != nil {
		return 0, p.err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.purged = append(p.purged, userID)

	return 1, nil
}

// fakeHash is a reversible stand-in so tests avoid bcrypt cost.
type fakeHash struct{}

func (fakeHash) Hash(plaintext string) ([]byte, error) { return []byte("h:" + plaintext), nil }
func (fakeHash) Verify(hashed, plaintext string) bool  { return hashed == "h:"+plaintext }

type seqNumID struct {
	mu sync.Mutex
	n  int64
}

func (u *seqNumID) Generate() int64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.n++

	return u.n
}

type fakeJWT struct{ err error }

func (j fakeJWT) Generate(uid int64, email, role string) (string, error) {
	if j.err != nil {
		return "", j.err
	}

	return fmt.Sprintf("token:%d:%s:%s", uid, email, role), nil
}

func (fakeJWT) Verify(string) (jwt.Claims, error) { return jwt.Claims{}, nil }

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type ucFixture struct {
	uc     *Usecase
	repo   *fakeUserRepo
	purger *fakePurger
	clock  fixedClock
}

func newFixture(t *testing.T) *ucFixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	f := &ucFixture{
		repo:   newFakeUserRepo(),
		purger: &fakePurger{},
		clock:  fixedClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
	}

	f.uc = New(Dependency{
		RepoDB:     f.repo,
		CodePurger: f.purger,
		Validator:  v,
		Bcrypt:     fakeHash{},
		UID:        &seqNumID{},
		Clock:      f.clock,
		JWT:        fakeJWT{},
		Instrument: instrument.NewNoop(),
	})

	return f
}

func adminContext(userID int64) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: userID, Role: jwt.RoleAdmin})
}

func requireErrCode(t *testing.T, err error, code goerror.Code) {
	t.Helper()

	var ge *goerror.Error
	require.ErrorAs(t, err, &ge)
	require.Equal(t, code, ge.Code())
}
