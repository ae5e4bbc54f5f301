package service

import (
	"context"

	"goldlink-backend/internal/authz"
	"goldlink-backend/internal/domain"
	"goldlink-backend/internal/repository"
)

type transactionService struct {
	transactions repository.TransactionRepository
}

func NewTransactionService(transactions repository.TransactionRepository) TransactionService {
	return &transactionService{transactions: transactions}
}

func (s *transactionService) Get(ctx context.Context, actor authz.Actor, id int32) (*domain.Transaction, error) {
	tx, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.ID != tx.BuyerID && actor.ID != tx.SellerID && !actor.IsAdmin() {
		return nil, domain.Unauthorized("you are not a party to this transaction")
	}
	return tx, nil
}

func (s *transactionService) ListMine(ctx context.Context, actor authz.Actor, limit, skip int32) ([]domain.Transaction, int32, error) {
	return s.transactions.ListByUser(ctx, actor.ID, limit, skip)
}
