package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Harshana2/lims/internal/config"
	"github.com/Harshana2/lims/internal/lims/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrDuplicateIdentifier = errors.New("identifier already exists")
	ErrIdentifierConflict  = errors.New("identifier taken by a concurrent create")
	ErrValidation          = errors.New("validation failed")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrDefaultTemplate     = errors.New("the default template cannot be deleted")
)

// Services every LIMS service
type Services struct {
	Request        *RequestService
	Quotation      *QuotationService
	CRF            *CRFService
	Sample         *SampleService
	Chemist        *ChemistService
	Audit          *AuditService
	TestParameter  *TestParameterService
	ReportTemplate *ReportTemplateService
	EnvSampling    *EnvSamplingService
	Auth           *AuthService
	Dashboard      *DashboardService
	Report         *ReportService
}

// Deps optional collaborators; nil members disable the features that need them
type Deps struct {
	Tokens  TokenStore
	Archive ObjectStore
}

func NewServices(repos *repository.Repositories, cfg *config.Config, deps Deps, logger *zap.Logger) *Services {
	audit := NewAuditService(repos, logger)
	templates := NewReportTemplateService(repos)
	return &Services{
		Request:        NewRequestService(repos),
		Quotation:      NewQuotationService(repos, cfg.Lab.TaxRate),
		CRF:            NewCRFService(repos, logger),
		Sample:         NewSampleService(repos),
		Chemist:        NewChemistService(repos),
		Audit:          audit,
		TestParameter:  NewTestParameterService(repos),
		ReportTemplate: templates,
		EnvSampling:    NewEnvSamplingService(repos),
		Auth:           NewAuthService(repos, deps.Tokens, cfg.JWT),
		Dashboard:      NewDashboardService(repos),
		Report:         NewReportService(repos, templates, deps.Archive, cfg.Lab.Name, logger),
	}
}

func generateID() string {
	return uuid.New().String()[:32]
}

// notFound wraps a repository miss as ErrNotFound with context
func notFound(err error, kind, key string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s %s: %w", kind, key, ErrNotFound)
	}
	return fmt.Errorf("load %s: %w", kind, err)
}

// saveErr maps a write failure, unique index violations become ErrIdentifierConflict
func saveErr(err error, kind, code string) error {
	if errors.Is(err, repository.ErrDuplicateKey) {
		return fmt.Errorf("%s %s: %w", kind, code, ErrIdentifierConflict)
	}
	return fmt.Errorf("save %s: %w", kind, err)
}

func validation(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation)
}

// assignCode draws the next code from scheme when none is supplied. A supplied
// code is kept when free; a taken one fails with ErrDuplicateIdentifier and one
// whose suffix would exhaust the scheme with ErrValidation.
func assignCode(
	ctx context.Context,
	seq *repository.SequenceRepository,
	scheme repository.CodeScheme,
	supplied string,
	exists func(context.Context, string) (bool, error),
	kind string,
) (string, error) {
	if supplied == "" {
		code, err := seq.Next(ctx, scheme)
		if err != nil {
			return "", fmt.Errorf("generate %s code: %w", kind, err)
		}
		return code, nil
	}

	if scheme.Blocks(supplied) {
		return "", validation("%s code %s exceeds the sequence range", kind, supplied)
	}

	taken, err := exists(ctx, supplied)
	if err != nil {
		return "", fmt.Errorf("check %s code: %w", kind, err)
	}
	if taken {
		return "", fmt.Errorf("%s %s: %w", kind, supplied, ErrDuplicateIdentifier)
	}
	return supplied, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
