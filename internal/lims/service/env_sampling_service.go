package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Harshana2/lims/internal/lims/entity"
	"github.com/Harshana2/lims/internal/lims/repository"
	"gorm.io/datatypes"
)

// EnvSamplingService sampling point maps, one per CRF
type EnvSamplingService struct {
	repos *repository.Repositories
}

func NewEnvSamplingService(repos *repository.Repositories) *EnvSamplingService {
	return &EnvSamplingService{repos: repos}
}

type SubmitEnvSamplingReq struct {
	CRFID              string         `json:"crf_id" binding:"required"`
	MapType            string         `json:"map_type"`
	SamplingPointsData datatypes.JSON `json:"sampling_points_data"`
	MapImage           string         `json:"map_image"`
}

// Submit records the map for a CRF, replacing any earlier submission
func (s *EnvSamplingService) Submit(ctx context.Context, req SubmitEnvSamplingReq, submittedBy string) (*entity.EnvironmentalSampling, error) {
	if _, err := s.repos.CRF.FindByID(ctx, req.CRFID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, validation("crf %s does not exist", req.CRFID)
		}
		return nil, fmt.Errorf("load crf: %w", err)
	}

	points, err := samplingPoints(req.SamplingPointsData)
	if err != nil {
		return nil, err
	}

	existing, err := s.repos.EnvSampling.FindByCRF(ctx, req.CRFID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("load sampling map: %w", err)
	}

	now := time.Now()
	if existing != nil {
		existing.MapType = req.MapType
		existing.SamplingPointsData = points
		existing.MapImage = req.MapImage
		existing.SubmittedBy = submittedBy
		existing.SubmittedAt = now
		if err := s.repos.EnvSampling.Update(ctx, existing); err != nil {
			return nil, saveErr(err, "sampling map", req.CRFID)
		}
		return existing, nil
	}

	e := &entity.EnvironmentalSampling{
		ID:                 generateID(),
		CRFID:              req.CRFID,
		MapType:            req.MapType,
		SamplingPointsData: points,
		MapImage:           req.MapImage,
		SubmittedBy:        submittedBy,
		SubmittedAt:        now,
	}
	if err := s.repos.EnvSampling.Create(ctx, e); err != nil {
		return nil, saveErr(err, "sampling map", req.CRFID)
	}
	return e, nil
}

// samplingPoints defaults to an empty array and rejects anything that is not JSON
func samplingPoints(raw datatypes.JSON) (datatypes.JSON, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return datatypes.JSON("[]"), nil
	}
	if !json.Valid(raw) {
		return nil, validation("sampling_points_data is not valid JSON")
	}
	return raw, nil
}

func (s *EnvSamplingService) Get(ctx context.Context, id string) (*entity.EnvironmentalSampling, error) {
	e, err := s.repos.EnvSampling.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "sampling map", id)
	}
	return e, nil
}

func (s *EnvSamplingService) GetByCRF(ctx context.Context, crfID string) (*entity.EnvironmentalSampling, error) {
	e, err := s.repos.EnvSampling.FindByCRF(ctx, crfID)
	if err != nil {
		return nil, notFound(err, "sampling map for crf", crfID)
	}
	return e, nil
}

// List filters: map_type, submitted_by
func (s *EnvSamplingService) List(ctx context.Context, filters map[string]string) ([]entity.EnvironmentalSampling, error) {
	items, err := s.repos.EnvSampling.FindAll(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("list sampling maps: %w", err)
	}
	return items, nil
}

func (s *EnvSamplingService) Delete(ctx context.Context, id string) error {
	if err := s.repos.EnvSampling.Delete(ctx, id); err != nil {
		return notFound(err, "sampling map", id)
	}
	return nil
}
