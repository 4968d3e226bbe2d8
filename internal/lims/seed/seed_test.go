package seed

import (
	"context"
	"testing"
	"time"

	"github.com/Harshana2/lims/internal/config"
	"github.com/Harshana2/lims/internal/lims/entity"
	"github.com/Harshana2/lims/internal/lims/repository"
	"github.com/Harshana2/lims/internal/lims/service"
	"github.com/Harshana2/lims/internal/lims/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSeeder(t *testing.T) (*Seeder, *service.Services) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: testutil.JWTSecret, AccessTokenExpire: time.Hour, RefreshTokenExpire: time.Hour, Issuer: "lims"},
		Lab: config.LabConfig{Name: "Test Laboratory", TaxRate: 0.10},
	}
	svc := service.NewServices(repos, cfg, service.Deps{}, zap.NewNop())
	return NewSeeder(repos, svc, "password123", zap.NewNop()), svc
}

func TestSeedLoadsDemoData(t *testing.T) {
	seeder, svc := newSeeder(t)
	ctx := context.Background()

	res, err := seeder.Run(ctx)
	require.NoError(t, err)
	assert.False(t, res.Skipped)
	assert.Equal(t, 5, res.Users)
	assert.Equal(t, 6, res.Chemists)
	assert.Equal(t, 10, res.TestParameters)
	assert.Equal(t, 3, res.Requests)
	assert.Equal(t, 2, res.Quotations)
	assert.Equal(t, 3, res.CRFs)

	_, _, err = svc.Auth.Login(ctx, service.LoginReq{Username: "admin", Password: "password123"})
	require.NoError(t, err)

	approved, err := svc.Quotation.ListByStatus(ctx, entity.QuotationStatusApproved)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.NotNil(t, approved[0].SentDate)
	assert.NotNil(t, approved[0].ApprovedDate)

	samples, err := svc.Sample.CountByStatus(ctx, entity.SampleStatusPending)
	require.NoError(t, err)
	assert.Equal(t, int64(12), samples)

	def, err := svc.ReportTemplate.GetDefault(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, def.ID)
}

func TestSeedSkipsWhenUsersExist(t *testing.T) {
	seeder, svc := newSeeder(t)
	ctx := context.Background()

	_, err := seeder.Run(ctx)
	require.NoError(t, err)

	res, err := seeder.Run(ctx)
	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.Equal(t, 0, res.TestParameters)

	chemists, err := svc.Chemist.List(ctx)
	require.NoError(t, err)
	assert.Len(t, chemists, 6)
}
