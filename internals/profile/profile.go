package profile

import (
	"context"

	"github.com/footstocks/api-server/internals/portfolio"
	"github.com/footstocks/api-server/internals/store"
	"github.com/footstocks/api-server/pkg/kvstore"
)

type ProfileService struct {
	KV    kvstore.KVStore
	Store store.Store
	ps    *portfolio.PortfolioService
}

func New(kv kvstore.KVStore, st store.Store) *ProfileService {
	return &ProfileService{
		KV:    kv,
		Store: st,
		ps:    portfolio.New(st, kv),
	}
}

func (ps *ProfileService) GetProfile(ctx context.Context, accountID string) (CompleteProfile, error) {
	var completeProfile CompleteProfile

	account, err := ps.Store.GetAccount(ctx, accountID)
	if err != nil {
		return completeProfile, err
	}

	completeProfile.Profile = Profile{
		AccountID: account.ID,
		Username:  account.Username,
		Email:     account.Email,
		Balance:   account.Balance,
		CreatedAt: account.CreatedAt,
	}

	detailed, err := ps.ps.GetDetailedPortfolio(ctx, accountID)
	if err != nil {
		return completeProfile, err
	}

	completeProfile.TotalValue = detailed.TotalValue
	completeProfile.TotalInvested = detailed.TotalInvested
	completeProfile.ProfitLoss = detailed.ProfitLoss
	completeProfile.ProfitLossPercent = detailed.ProfitLossPercent

	return completeProfile, nil
}
