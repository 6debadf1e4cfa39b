package customer

import (
	"github.com/santoko/kasir-api/internal/application/dto"
	"github.com/santoko/kasir-api/internal/domain"
	"github.com/santoko/kasir-api/internal/domain/entity"
	"github.com/santoko/kasir-api/internal/domain/repository"
)

// UseCase exposes customer master-data lookups for the POS front end: the
// search box the operator uses before opening a cart.
type UseCase struct {
	customerRepo repository.CustomerRepository
}

// NewUseCase builds the customer use case.
func NewUseCase(customerRepo repository.CustomerRepository) *UseCase {
	return &UseCase{customerRepo: customerRepo}
}

// Search lists customers matching the filters, scoped to the actor's store.
func (uc *UseCase) Search(actor dto.Actor, req dto.CustomerSearchRequest) (*dto.CustomerListResponse, error) {
	req.DefaultPage()
	params := repository.CustomerSearchParams{
		Name:        req.Name,
		Code:        req.Code,
		PhoneNumber: req.PhoneNumber,
		IsActive:    req.IsActive,
		Limit:       req.Limit,
		Offset:      req.Offset,
	}
	customers, total, err := uc.customerRepo.Search(actor.StoreID, params)
	if err != nil {
		return nil, err
	}
	resp := &dto.CustomerListResponse{
		Customers: make([]dto.CustomerResponse, 0, len(customers)),
		Page:      dto.PageResponse{Limit: req.Limit, Offset: req.Offset, Total: total},
	}
	for _, c := range customers {
		resp.Customers = append(resp.Customers, toResponse(c))
	}
	return resp, nil
}

// Get returns one customer by id.
func (uc *UseCase) Get(id int64) (*dto.CustomerResponse, error) {
	c, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCustomerNotFound
	}
	r := toResponse(c)
	return &r, nil
}

func toResponse(c *entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:          c.ID,
		Code:        c.Code,
		Name:        c.Name,
		PhoneNumber: c.PhoneNumber,
		Email:       c.Email,
		Tier:        int(c.Tier),
		Point:       c.Deposit,
		Piutang:     c.Expense,
		IsActive:    c.IsActive,
	}
}
