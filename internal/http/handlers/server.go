package handlers

import (
	"github.com/rogerio-castellano/finance-tracker/internal/auth"
	"github.com/rogerio-castellano/finance-tracker/internal/http/ban"
	"github.com/rogerio-castellano/finance-tracker/internal/ledger"
	"github.com/rogerio-castellano/finance-tracker/internal/repo"
)

var (
	ledgerService *ledger.Service
	authService   *auth.AuthService
	categoryRepo  repo.CategoryRepository
	banGuard      *ban.Guard

	listingLimit = 10
)

func SetLedgerService(s *ledger.Service) {
	ledgerService = s
}

func SetAuthService(s *auth.AuthService) {
	authService = s
}

func SetCategoryRepo(r repo.CategoryRepository) {
	categoryRepo = r
}

func SetBanGuard(g *ban.Guard) {
	banGuard = g
}

// SetListingLimit sets the page size used when a listing request names none.
func SetListingLimit(n int) {
	if n > 0 {
		listingLimit = n
	}
}

// AuthService is used by the router's middleware.
func AuthService() *auth.AuthService {
	return authService
}
