package rest

import (
	"context"
	"fmt"
	"net/http"

	"vetadmin/internal/domain/entity"
	"vetadmin/internal/domain/gateway"
)

type accountGateway struct {
	client *Client
}

func NewAccountGateway(client *Client) gateway.AccountGateway {
	return &accountGateway{client: client}
}

func (g *accountGateway) Create(ctx context.Context, account *entity.Account) (*entity.Account, error) {
	payload := map[string]interface{}{
		"login_name": account.LoginName,
		"secret":     account.Secret,
		"role":       account.Role,
		"status":     account.Status,
	}

	var created entity.Account
	if err := g.client.do(ctx, http.MethodPost, "/accounts", nil, payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (g *accountGateway) Update(ctx context.Context, id int64, loginName string) error {
	payload := map[string]string{"login_name": loginName}
	return g.client.do(ctx, http.MethodPut, fmt.Sprintf("/accounts/%d", id), nil, payload, nil)
}

func (g *accountGateway) ResetSecret(ctx context.Context, id int64, secret string) error {
	payload := map[string]string{"new_secret": secret}
	return g.client.do(ctx, http.MethodPatch, fmt.Sprintf("/accounts/%d/reset-secret", id), nil, payload, nil)
}

func (g *accountGateway) Deactivate(ctx context.Context, id int64) error {
	return g.client.do(ctx, http.MethodPatch, fmt.Sprintf("/accounts/%d/deactivate", id), nil, nil, nil)
}

func (g *accountGateway) FindByID(ctx context.Context, id int64) (*entity.Account, error) {
	var account entity.Account
	if err := g.client.do(ctx, http.MethodGet, fmt.Sprintf("/accounts/%d", id), nil, nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (g *accountGateway) Login(ctx context.Context, loginName, secret string) (*entity.Account, error) {
	payload := map[string]string{
		"login_name": loginName,
		"secret":     secret,
	}

	var account entity.Account
	if err := g.client.do(ctx, http.MethodPost, "/auth/login", nil, payload, &account); err != nil {
		return nil, err
	}
	return &account, nil
}
