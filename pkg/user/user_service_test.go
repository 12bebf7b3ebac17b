package user

import (
	"Livecast-Backend/domain"
	"Livecast-Backend/entities"
	"Livecast-Backend/pkg/jwt"
	"Livecast-Backend/pkg/wallet"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupUserTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:user_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open db")
	require.NoError(t, db.AutoMigrate(&entities.User{}, &entities.Wallet{}), "migrate db")
	return db
}

func newUserService(db *gorm.DB) UserService {
	return NewUserService(db, NewUserRepository(db), wallet.NewWalletRepository(db), jwt.NewJWTService())
}

func TestRegisterCreatesUserWithWallet(t *testing.T) {
	db := setupUserTestDB(t)
	service := newUserService(db)

	res, err := service.Register(context.Background(), domain.RegisterRequest{
		FullName: "Sari Dewi",
		Email:    "sari@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, res.Role)

	var user entities.User
	require.NoError(t, db.Where("email = ?", "sari@example.com").First(&user).Error)
	assert.NotEqual(t, "supersecret", user.Password, "password must be hashed")

	var w entities.Wallet
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&w).Error)
	assert.Equal(t, 0, w.Balance, "new accounts start with an empty wallet")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupUserTestDB(t)
	service := newUserService(db)
	ctx := context.Background()

	_, err := service.Register(ctx, domain.RegisterRequest{
		FullName: "Sari Dewi",
		Email:    "sari@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	_, err = service.Register(ctx, domain.RegisterRequest{
		FullName: "Another Sari",
		Email:    "sari@example.com",
		Password: "othersecret",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupUserTestDB(t)
	service := newUserService(db)
	ctx := context.Background()

	_, err := service.Register(ctx, domain.RegisterRequest{
		FullName: "Sari Dewi",
		Email:    "sari@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	_, err = service.Login(ctx, domain.LoginRequest{
		Email:    "sari@example.com",
		Password: "wrongsecret",
	})
	assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)

	_, err = service.Login(ctx, domain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)
}

func TestLoginIssuesToken(t *testing.T) {
	db := setupUserTestDB(t)
	service := newUserService(db)
	ctx := context.Background()

	_, err := service.Register(ctx, domain.RegisterRequest{
		FullName: "Sari Dewi",
		Email:    "sari@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	res, err := service.Login(ctx, domain.LoginRequest{
		Email:    "sari@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, domain.RoleUser, res.Role)
}

func TestMeUnknownUser(t *testing.T) {
	db := setupUserTestDB(t)
	service := newUserService(db)

	_, err := service.Me(context.Background(), "00000000-0000-0000-0000-000000000001")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
