package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// Repositories every LIMS repository over one connection
type Repositories struct {
	db *gorm.DB

	Sequence       *SequenceRepository
	Request        *RequestRepository
	Quotation      *QuotationRepository
	CRF            *CRFRepository
	Sample         *SampleRepository
	Chemist        *ChemistRepository
	AuditLog       *AuditLogRepository
	TestParameter  *TestParameterRepository
	ReportTemplate *ReportTemplateRepository
	EnvSampling    *EnvSamplingRepository
	User           *UserRepository
}

// NewRepositories builds every repository over db
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:             db,
		Sequence:       NewSequenceRepository(db),
		Request:        NewRequestRepository(db),
		Quotation:      NewQuotationRepository(db),
		CRF:            NewCRFRepository(db),
		Sample:         NewSampleRepository(db),
		Chemist:        NewChemistRepository(db),
		AuditLog:       NewAuditLogRepository(db),
		TestParameter:  NewTestParameterRepository(db),
		ReportTemplate: NewReportTemplateRepository(db),
		EnvSampling:    NewEnvSamplingRepository(db),
		User:           NewUserRepository(db),
	}
}

// DB underlying connection, used by services to open transactions
func (r *Repositories) DB() *gorm.DB {
	return r.db
}

// WithTx rebinds every repository to tx
func (r *Repositories) WithTx(tx *gorm.DB) *Repositories {
	return NewRepositories(tx)
}

// translate maps driver errors to package errors
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if isUniqueViolation(err) {
		return ErrDuplicateKey
	}
	return err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	// postgres: duplicate key value violates unique constraint; sqlite: UNIQUE constraint failed
	return strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "UNIQUE constraint failed")
}

// likeContains builds a case-insensitive substring pattern for LOWER(col) LIKE ?
func likeContains(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + strings.ToLower(r.Replace(s)) + "%"
}
