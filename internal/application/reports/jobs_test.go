package reports_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Hoteleria-api/internal/application/reports"
	"github.com/jhoicas/Hoteleria-api/internal/domain"
)

// stubGenerator generador controlable desde el test: block retiene la
// generación hasta que el test la libere, fail fuerza un error.
type stubGenerator struct {
	validateErr error
	fail        error
	block       chan struct{} // nil = no bloquea
}

func (g *stubGenerator) Validate(_, _ string, _, _ time.Time) error {
	return g.validateErr
}

func (g *stubGenerator) Generate(ctx context.Context, reportType, format string, _, _ time.Time) (*reports.Artifact, error) {
	if g.block != nil {
		select {
		case <-g.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if g.fail != nil {
		return nil, g.fail
	}
	return &reports.Artifact{
		Bytes:    []byte("contenido"),
		MimeType: "text/csv",
		Filename: "reporte_" + reportType + "." + format,
	}, nil
}

func newJobManager(gen reports.Generator, maxConcurrent int64) *reports.JobManager {
	return reports.NewJobManager(gen, maxConcurrent, zerolog.Nop())
}

func waitForStatus(t *testing.T, m *reports.JobManager, id, status string) *reports.Job {
	t.Helper()
	var job *reports.Job
	require.Eventually(t, func() bool {
		j, err := m.Get(id)
		if err != nil {
			return false
		}
		job = j
		return j.Status == status
	}, 2*time.Second, 5*time.Millisecond, "esperaba estado %s", status)
	return job
}

func TestSubmit_CompletaYEntregaArtefacto(t *testing.T) {
	m := newJobManager(&stubGenerator{}, 2)

	id, err := m.Submit(reports.ReportSales, reports.FormatCSV, rangeStart, rangeEnd)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	job := waitForStatus(t, m, id, reports.JobDone)
	require.NotNil(t, job.Artifact)
	assert.Equal(t, []byte("contenido"), job.Artifact.Bytes)
	assert.Empty(t, job.Err)
	assert.False(t, job.FinishedAt.IsZero())
}

func TestSubmit_ValidacionSincrona(t *testing.T) {
	m := newJobManager(&stubGenerator{validateErr: domain.Validationf("format", "formato desconocido")}, 2)

	_, err := m.Submit(reports.ReportSales, "docx", rangeStart, rangeEnd)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSubmit_FalloDeGeneracion(t *testing.T) {
	m := newJobManager(&stubGenerator{fail: errors.New("sin conexión a la base")}, 2)

	id, err := m.Submit(reports.ReportSales, reports.FormatCSV, rangeStart, rangeEnd)
	require.NoError(t, err)

	job := waitForStatus(t, m, id, reports.JobFailed)
	assert.Contains(t, job.Err, "sin conexión")
	assert.Nil(t, job.Artifact)
}

func TestCancel_TrabajoEnEjecucion(t *testing.T) {
	gen := &stubGenerator{block: make(chan struct{})}
	m := newJobManager(gen, 2)

	id, err := m.Submit(reports.ReportSales, reports.FormatCSV, rangeStart, rangeEnd)
	require.NoError(t, err)
	waitForStatus(t, m, id, reports.JobRunning)

	require.NoError(t, m.Cancel(id))

	job, err := m.Get(id)
	require.NoError(t, err)
	assert.Equal(t, reports.JobCancelled, job.Status)

	// Aunque el generador termine después, el estado terminal no se pisa.
	close(gen.block)
	time.Sleep(20 * time.Millisecond)
	job, err = m.Get(id)
	require.NoError(t, err)
	assert.Equal(t, reports.JobCancelled, job.Status)
	assert.Nil(t, job.Artifact)
}

func TestCancel_TrabajoEnCola(t *testing.T) {
	gen := &stubGenerator{block: make(chan struct{})}
	defer close(gen.block)
	// Un solo hueco: el segundo trabajo espera el semáforo en pending.
	m := newJobManager(gen, 1)

	first, err := m.Submit(reports.ReportSales, reports.FormatCSV, rangeStart, rangeEnd)
	require.NoError(t, err)
	waitForStatus(t, m, first, reports.JobRunning)

	second, err := m.Submit(reports.ReportRevenue, reports.FormatCSV, rangeStart, rangeEnd)
	require.NoError(t, err)

	job, err := m.Get(second)
	require.NoError(t, err)
	require.Equal(t, reports.JobPending, job.Status)

	require.NoError(t, m.Cancel(second))
	job = waitForStatus(t, m, second, reports.JobCancelled)
	assert.Nil(t, job.Artifact)
}

func TestCancel_TrabajoTerminado(t *testing.T) {
	m := newJobManager(&stubGenerator{}, 2)

	id, err := m.Submit(reports.ReportSales, reports.FormatCSV, rangeStart, rangeEnd)
	require.NoError(t, err)
	waitForStatus(t, m, id, reports.JobDone)

	err = m.Cancel(id)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestCancel_NoExiste(t *testing.T) {
	m := newJobManager(&stubGenerator{}, 2)
	assert.ErrorIs(t, m.Cancel("fantasma"), domain.ErrNotFound)
}

func TestGet_NoExiste(t *testing.T) {
	m := newJobManager(&stubGenerator{}, 2)
	_, err := m.Get("fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPurgeExpired_SoloTerminadosViejos(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	m := newJobManager(&stubGenerator{}, 2).WithClock(func() time.Time { return now })

	oldID, err := m.Submit(reports.ReportSales, reports.FormatCSV, rangeStart, rangeEnd)
	require.NoError(t, err)
	waitForStatus(t, m, oldID, reports.JobDone)

	// Avanza el reloj más allá de la retención y encola uno nuevo.
	now = now.Add(2 * time.Hour)
	freshID, err := m.Submit(reports.ReportRevenue, reports.FormatCSV, rangeStart, rangeEnd)
	require.NoError(t, err)
	waitForStatus(t, m, freshID, reports.JobDone)

	purged := m.PurgeExpired(time.Hour)
	assert.Equal(t, 1, purged)

	_, err = m.Get(oldID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "el viejo se purga")

	_, err = m.Get(freshID)
	assert.NoError(t, err, "el reciente sobrevive")
}

func TestPurgeExpired_NoTocaEnEjecucion(t *testing.T) {
	gen := &stubGenerator{block: make(chan struct{})}
	defer close(gen.block)
	m := newJobManager(gen, 2)

	id, err := m.Submit(reports.ReportSales, reports.FormatCSV, rangeStart, rangeEnd)
	require.NoError(t, err)
	waitForStatus(t, m, id, reports.JobRunning)

	assert.Equal(t, 0, m.PurgeExpired(0))
	_, err = m.Get(id)
	assert.NoError(t, err)
}
