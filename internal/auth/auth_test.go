package auth

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/muhammadolammi/careercompass/internal/database"
)

type fakeUsers struct {
	mu    sync.Mutex
	users map[string]database.User
}

func (f *fakeUsers) CreateUser(_ context.Context, arg database.CreateUserParams) (database.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[arg.Email]; ok {
		return database.User{}, &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"}
	}
	u := database.User{ID: uuid.New(), Email: arg.Email, PasswordHash: arg.PasswordHash, CreatedAt: time.Now()}
	f.users[arg.Email] = u
	return u, nil
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (database.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[email]
	if !ok {
		return database.User{}, sql.ErrNoRows
	}
	return u, nil
}

func newTestService() *Service {
	s := NewService(&fakeUsers{users: map[string]database.User{}}, "test-secret", time.Hour, nil)
	s.cost = bcrypt.MinCost
	return s
}

func TestSignUpAndSignIn(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	id, token, err := s.SignUp(ctx, "  Asha@Example.com ", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", id.Email)
	assert.False(t, id.Anonymous)
	assert.NotEmpty(t, token)

	again, _, err := s.SignIn(ctx, "asha@example.com", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, id.ID, again.ID)

	verified, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, id, verified)
}

func TestSignUp_Rejections(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, _, err := s.SignUp(ctx, "not-an-email", "s3cret!")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = s.SignUp(ctx, "asha@example.com", "123")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = s.SignUp(ctx, "asha@example.com", "s3cret!")
	require.NoError(t, err)
	_, _, err = s.SignUp(ctx, "ASHA@example.com", "another1")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignIn_InvalidCredentials(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	_, _, err := s.SignUp(ctx, "asha@example.com", "s3cret!")
	require.NoError(t, err)

	_, _, err = s.SignIn(ctx, "asha@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = s.SignIn(ctx, "nobody@example.com", "s3cret!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerify_Rejects(t *testing.T) {
	s := newTestService()
	_, token, err := s.SignUp(context.Background(), "asha@example.com", "s3cret!")
	require.NoError(t, err)

	other := newTestService()
	other.secret = []byte("different")
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.Verify("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
