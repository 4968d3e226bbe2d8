package service

import (
	"testing"

	"github.com/Harshana2/lims/internal/lims/entity"
	"github.com/Harshana2/lims/internal/lims/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportTemplateSingleDefault(t *testing.T) {
	f := newFixture(t, Deps{})

	first, err := f.svc.ReportTemplate.Create(f.ctx, ReportTemplateReq{Name: "Standard", IsDefault: true}, "admin")
	require.NoError(t, err)
	second, err := f.svc.ReportTemplate.Create(f.ctx, ReportTemplateReq{Name: "Summary", TemplateType: "summary", IsDefault: true}, "admin")
	require.NoError(t, err)

	reloaded, err := f.svc.ReportTemplate.Get(f.ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsDefault)

	def, err := f.svc.ReportTemplate.GetDefault(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, def.ID)

	_, err = f.svc.ReportTemplate.SetDefault(f.ctx, first.ID)
	require.NoError(t, err)
	def, err = f.svc.ReportTemplate.GetDefault(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, def.ID)

	var defaults int64
	f.db.Model(&entity.ReportTemplate{}).Where("is_default = ?", true).Count(&defaults)
	assert.Equal(t, int64(1), defaults)
}

func TestReportTemplateDefaultCannotBeDeleted(t *testing.T) {
	f := newFixture(t, Deps{})

	def, err := f.svc.ReportTemplate.Create(f.ctx, ReportTemplateReq{Name: "Standard", IsDefault: true}, "admin")
	require.NoError(t, err)
	other, err := f.svc.ReportTemplate.Create(f.ctx, ReportTemplateReq{Name: "Custom", TemplateType: "custom"}, "admin")
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.ReportTemplate.Delete(f.ctx, def.ID), ErrDefaultTemplate)
	require.NoError(t, f.svc.ReportTemplate.Delete(f.ctx, other.ID))
	assert.ErrorIs(t, f.svc.ReportTemplate.Delete(f.ctx, other.ID), ErrNotFound)
}

func TestReportTemplateFallbackAndToggle(t *testing.T) {
	f := newFixture(t, Deps{})

	builtin, err := f.svc.ReportTemplate.GetDefault(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, "Standard", builtin.Name)
	assert.True(t, builtin.IncludeTestResults)

	tmpl, err := f.svc.ReportTemplate.Create(f.ctx, ReportTemplateReq{Name: "Custom"}, "manager")
	require.NoError(t, err)
	assert.True(t, tmpl.IsActive)
	assert.Equal(t, "A4", tmpl.PageSize)
	assert.Equal(t, "portrait", tmpl.Orientation)

	toggled, err := f.svc.ReportTemplate.ToggleActive(f.ctx, tmpl.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	active, err := f.svc.ReportTemplate.List(f.ctx, repository.ReportTemplateFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Empty(t, active)

	mine, err := f.svc.ReportTemplate.List(f.ctx, repository.ReportTemplateFilter{CreatedBy: "manager"})
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}
