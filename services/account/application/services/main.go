package services

import (
	"github.com/ghuser/simplemarket/pkg/app"
	"github.com/ghuser/simplemarket/services/account/infrastructure/crypto"
	"github.com/ghuser/simplemarket/services/account/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for the account context.
type Services struct {
	Account *AccountService
}

// New wires the account services with infrastructure from the Application container.
func New(a *app.Application) (*Services, error) {
	svc, err := NewAccountService(
		postgres.NewUserRepository(a.Db),
		crypto.NewArgon2Hasher(crypto.DefaultParams),
		a.Logger,
	)
	if err != nil {
		return nil, err
	}
	return &Services{Account: svc}, nil
}
