package reports

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/jhoicas/Hoteleria-api/internal/domain"
)

// Estados de un trabajo de generación de reporte.
const (
	JobPending   = "pending"
	JobRunning   = "running"
	JobDone      = "done"
	JobFailed    = "failed"
	JobCancelled = "cancelled"
)

// Generator es lo que la cola necesita del exportador. ExportUseCase lo
// implementa; los tests usan stubs.
type Generator interface {
	Validate(reportType, format string, start, end time.Time) error
	Generate(ctx context.Context, reportType, format string, start, end time.Time) (*Artifact, error)
}

// Job instantánea del estado de un trabajo. El artefacto vive en memoria
// hasta que el janitor purga el trabajo.
type Job struct {
	ID         string
	ReportType string
	Format     string
	DateStart  time.Time
	DateEnd    time.Time
	Status     string
	Artifact   *Artifact
	Err        string
	CreatedAt  time.Time
	FinishedAt time.Time
}

type jobEntry struct {
	job    Job
	cancel context.CancelFunc
}

// JobManager ejecuta la generación de reportes fuera del camino de la
// petición: Submit encola y devuelve un id; el cliente sondea con Get y
// descarga el artefacto al terminar. La concurrencia está acotada por un
// semáforo y cada trabajo es cancelable vía su contexto.
type JobManager struct {
	generator Generator
	sem       *semaphore.Weighted
	log       zerolog.Logger
	nowFn     func() time.Time

	mu   sync.RWMutex
	jobs map[string]*jobEntry
}

// NewJobManager construye la cola con un máximo de trabajos simultáneos.
func NewJobManager(generator Generator, maxConcurrent int64, log zerolog.Logger) *JobManager {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &JobManager{
		generator: generator,
		sem:       semaphore.NewWeighted(maxConcurrent),
		log:       log,
		nowFn:     time.Now,
		jobs:      make(map[string]*jobEntry),
	}
}

// WithClock sustituye la fuente de tiempo (tests).
func (m *JobManager) WithClock(now func() time.Time) *JobManager {
	m.nowFn = now
	return m
}

// Submit valida los parámetros, encola el trabajo y devuelve su id.
// Los errores de validación se devuelven aquí, de forma síncrona; el resto
// del ciclo de vida se observa con Get. El contexto del trabajo es propio
// (no el de la petición HTTP): cancelar la petición no cancela el reporte.
func (m *JobManager) Submit(reportType, format string, start, end time.Time) (string, error) {
	if err := m.generator.Validate(reportType, format, start, end); err != nil {
		return "", err
	}

	jobCtx, cancel := context.WithCancel(context.Background())
	entry := &jobEntry{
		job: Job{
			ID:         uuid.New().String(),
			ReportType: reportType,
			Format:     format,
			DateStart:  start,
			DateEnd:    end,
			Status:     JobPending,
			CreatedAt:  m.nowFn(),
		},
		cancel: cancel,
	}

	m.mu.Lock()
	m.jobs[entry.job.ID] = entry
	m.mu.Unlock()

	go m.run(jobCtx, entry.job.ID)

	m.log.Info().
		Str("job_id", entry.job.ID).
		Str("report_type", reportType).
		Str("format", format).
		Msg("reporte encolado")
	return entry.job.ID, nil
}

// run ejecuta el trabajo respetando el semáforo y el contexto.
func (m *JobManager) run(ctx context.Context, id string) {
	if err := m.sem.Acquire(ctx, 1); err != nil {
		m.finish(id, nil, ctx.Err())
		return
	}
	defer m.sem.Release(1)

	entry, ok := m.snapshot(id)
	if !ok || entry.Status != JobPending {
		return
	}
	m.setStatus(id, JobRunning)

	artifact, err := m.generator.Generate(ctx, entry.ReportType, entry.Format, entry.DateStart, entry.DateEnd)
	m.finish(id, artifact, err)
}

// Get devuelve una instantánea del trabajo.
func (m *JobManager) Get(id string) (*Job, error) {
	job, ok := m.snapshot(id)
	if !ok {
		return nil, &domain.NotFoundError{Entity: "reporte", ID: id}
	}
	return &job, nil
}

// Cancel interrumpe un trabajo pendiente o en ejecución. Un trabajo
// terminado no es cancelable.
func (m *JobManager) Cancel(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.jobs[id]
	if !ok {
		return &domain.NotFoundError{Entity: "reporte", ID: id}
	}
	switch entry.job.Status {
	case JobPending, JobRunning:
		entry.cancel()
		entry.job.Status = JobCancelled
		entry.job.FinishedAt = m.nowFn()
		m.log.Info().Str("job_id", id).Msg("reporte cancelado")
		return nil
	default:
		return &domain.InvalidStateError{Entity: "reporte", ID: id,
			Status: entry.job.Status, Operation: "cancelación"}
	}
}

// PurgeExpired elimina trabajos terminados hace más de retention.
// Lo invoca el janitor programado; devuelve cuántos purgó.
func (m *JobManager) PurgeExpired(retention time.Duration) int {
	cutoff := m.nowFn().Add(-retention)

	m.mu.Lock()
	defer m.mu.Unlock()

	purged := 0
	for id, entry := range m.jobs {
		switch entry.job.Status {
		case JobDone, JobFailed, JobCancelled:
			if entry.job.FinishedAt.Before(cutoff) {
				delete(m.jobs, id)
				purged++
			}
		}
	}
	if purged > 0 {
		m.log.Info().Int("purged", purged).Msg("trabajos de reporte purgados")
	}
	return purged
}

func (m *JobManager) snapshot(id string) (Job, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.jobs[id]
	if !ok {
		return Job{}, false
	}
	return entry.job, true
}

func (m *JobManager) setStatus(id, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry, ok := m.jobs[id]; ok && !terminalJob(entry.job.Status) {
		entry.job.Status = status
	}
}

// finish cierra el trabajo salvo que ya lo haya cerrado una cancelación.
func (m *JobManager) finish(id string, artifact *Artifact, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.jobs[id]
	if !ok || terminalJob(entry.job.Status) {
		return
	}
	entry.job.FinishedAt = m.nowFn()
	switch {
	case errors.Is(err, context.Canceled):
		entry.job.Status = JobCancelled
	case err != nil:
		entry.job.Status = JobFailed
		entry.job.Err = err.Error()
		m.log.Error().Str("job_id", id).Str("error", err.Error()).Msg("reporte fallido")
	default:
		entry.job.Status = JobDone
		entry.job.Artifact = artifact
		m.log.Info().Str("job_id", id).Str("filename", artifact.Filename).Msg("reporte generado")
	}
}

func terminalJob(status string) bool {
	return status == JobDone || status == JobFailed || status == JobCancelled
}
