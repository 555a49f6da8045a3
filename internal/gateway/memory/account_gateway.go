package memory

import (
	"context"
	"errors"
	"fmt"

	"vetadmin/internal/domain/entity"
	"vetadmin/internal/domain/gateway"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAccountNotFound    = fmt.Errorf("account %w", gateway.ErrNotFound)
	ErrLoginNameTaken     = errors.New("login name already in use")
	ErrInvalidCredentials = errors.New("invalid login name or secret")
)

type accountGateway struct {
	store *Store
}

func NewAccountGateway(store *Store) gateway.AccountGateway {
	return &accountGateway{store: store}
}

func (g *accountGateway) Create(ctx context.Context, account *entity.Account) (*entity.Account, error) {
	s := g.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.accounts {
		if existing.LoginName == account.LoginName {
			return nil, ErrLoginNameTaken
		}
	}

	created := s.addAccount(account.LoginName, account.Secret, account.Role)
	created.Status = account.Status
	out := *created
	return &out, nil
}

func (g *accountGateway) Update(ctx context.Context, id int64, loginName string) error {
	s := g.store
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return ErrAccountNotFound
	}
	for _, existing := range s.accounts {
		if existing.ID != id && existing.LoginName == loginName {
			return ErrLoginNameTaken
		}
	}
	account.LoginName = loginName
	return nil
}

func (g *accountGateway) ResetSecret(ctx context.Context, id int64, secret string) error {
	s := g.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[id]; !ok {
		return ErrAccountNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.secrets[id] = hash
	return nil
}

func (g *accountGateway) Deactivate(ctx context.Context, id int64) error {
	s := g.store
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return ErrAccountNotFound
	}
	account.Status = entity.AccountStatusInactive
	return nil
}

func (g *accountGateway) FindByID(ctx context.Context, id int64) (*entity.Account, error) {
	s := g.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	out := *account
	return &out, nil
}

func (g *accountGateway) Login(ctx context.Context, loginName, secret string) (*entity.Account, error) {
	s := g.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for id, account := range s.accounts {
		if account.LoginName != loginName {
			continue
		}
		if err := bcrypt.CompareHashAndPassword(s.secrets[id], []byte(secret)); err != nil {
			return nil, ErrInvalidCredentials
		}
		out := *account
		return &out, nil
	}
	return nil, ErrInvalidCredentials
}
