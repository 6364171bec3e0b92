package service

import (
	"context"
	"fmt"
	"strings"

	"overcooked-ordering/order-svc/internal/domain"
)

type AddressService struct {
	store Store
}

func NewAddressService(store Store) *AddressService {
	return &AddressService{store: store}
}

func (s *AddressService) List(ctx context.Context, userID int64) ([]domain.Address, error) {
	var addrs []domain.Address
	err := s.store.WithinTx(ctx, func(tx Tx) error {
		var err error
		addrs, err = tx.ListAddresses(ctx, userID)
		return err
	})
	return addrs, err
}

func (s *AddressService) Create(ctx context.Context, addr *domain.Address) error {
	if strings.TrimSpace(addr.Line1) == "" || strings.TrimSpace(addr.City) == "" {
		return fmt.Errorf("%w: line1 and city are required", ErrInvalidInput)
	}
	return s.store.WithinTx(ctx, func(tx Tx) error {
		return tx.CreateAddress(ctx, addr)
	})
}

var _ AddressServiceInterface = (*AddressService)(nil)
