package service

import (
	"context"
	"testing"
	"time"

	"github.com/Harshana2/lims/internal/config"
	"github.com/Harshana2/lims/internal/lims/repository"
	"github.com/Harshana2/lims/internal/lims/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db    *gorm.DB
	repos *repository.Repositories
	svc   *Services
	ctx   context.Context
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:             testutil.JWTSecret,
			AccessTokenExpire:  time.Hour,
			RefreshTokenExpire: 24 * time.Hour,
			Issuer:             "lims",
		},
		Lab: config.LabConfig{Name: "Test Laboratory", TaxRate: 0.10},
	}
}

func newFixture(t *testing.T, deps Deps) *fixture {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	return &fixture{
		db:    db,
		repos: repos,
		svc:   NewServices(repos, testConfig(), deps, zap.NewNop()),
		ctx:   context.Background(),
	}
}

func (f *fixture) seedParameter(t *testing.T, name, unit string, price int64) {
	t.Helper()
	_, err := f.svc.TestParameter.Create(f.ctx, CreateTestParameterReq{
		Name:         name,
		Unit:         unit,
		Method:       "APHA " + name,
		DefaultPrice: decimal.NewFromInt(price),
		Category:     "Chemical",
	})
	require.NoError(t, err)
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func strPtr(s string) *string {
	return &s
}

func yearCode(kind string, n int) string {
	return repository.YearScheme(nil, "", kind, time.Now()).Format(n)
}
