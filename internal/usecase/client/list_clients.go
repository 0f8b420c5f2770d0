package client

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ListClients alimenta o seletor de clientes. query filtra por nome,
// telefone ou e-mail.
type ListClients struct {
	repo domain.Repository
}

func NewListClients(repo domain.Repository) *ListClients {
	return &ListClients{repo: repo}
}

func (uc *ListClients) Execute(ctx context.Context, salonID uint, query string) ([]models.Client, error) {
	if _, err := uc.repo.GetSalonByID(ctx, salonID); err != nil {
		return nil, err
	}
	return uc.repo.ListClients(ctx, salonID, query)
}
