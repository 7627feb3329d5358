package ingest

import (
	"errors"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/statementlens/statementlens/internal/dataset"
	"github.com/statementlens/statementlens/internal/decoder"
	"github.com/statementlens/statementlens/internal/extract"
	"github.com/statementlens/statementlens/internal/models"
)

// Status tracks a file through the ingestion state machine:
//
//	pending -> awaiting_credential -> retrying -> succeeded | abandoned | failed
//
// Files whose name was already ingested short-circuit to skipped.
type Status string

const (
	StatusPending            Status = "pending"
	StatusAwaitingCredential Status = "awaiting_credential"
	StatusRetrying           Status = "retrying"
	StatusSucceeded          Status = "succeeded"
	StatusAbandoned          Status = "abandoned"
	StatusFailed             Status = "failed"
	StatusSkipped            Status = "skipped"
)

// FileResult is the outcome of processing one file.
type FileResult struct {
	ID       string `json:"id"`
	FileName string `json:"fileName"`
	Status   Status `json:"status"`
	// Rows is how many transactions were extracted; Added how many survived
	// deduplication into the dataset.
	Rows  int    `json:"rows"`
	Added int    `json:"added"`
	Error string `json:"error,omitempty"`
}

// CredentialPrompter supplies a credential for a protected document. It is
// the cooperative suspension point of the state machine: returning ok=false
// abandons the file and the batch moves on. A nil prompter leaves protected
// files in awaiting_credential so the caller can resubmit with a credential.
type CredentialPrompter func(fileName string) (credential string, ok bool)

// Runner drives file ingestion. Batches are processed one file at a time in
// selection order, which keeps dataset-merge ordering deterministic and
// avoids interleaved partial updates to the shared store.
type Runner struct {
	extractor *extract.Extractor
	store     *dataset.Store
	log       zerolog.Logger
}

// NewRunner returns a runner feeding the given store.
func NewRunner(extractor *extract.Extractor, store *dataset.Store, log zerolog.Logger) *Runner {
	return &Runner{extractor: extractor, store: store, log: log}
}

// ProcessBatch runs every file through ProcessFile. Per-file failures are
// logged and never abort the batch; files already ingested before the batch
// keep their rows.
func (r *Runner) ProcessBatch(paths []string, prompt CredentialPrompter) []FileResult {
	results := make([]FileResult, 0, len(paths))
	for _, path := range paths {
		res := r.ProcessFile(path, filepath.Base(path), prompt)
		switch res.Status {
		case StatusSucceeded:
			r.log.Info().Str("file", res.FileName).Int("rows", res.Rows).Int("added", res.Added).Msg("file ingested")
		case StatusSkipped:
			r.log.Info().Str("file", res.FileName).Msg("file already ingested, skipping")
		case StatusAbandoned:
			r.log.Warn().Str("file", res.FileName).Msg("credential prompt canceled, file abandoned")
		default:
			r.log.Error().Str("file", res.FileName).Str("status", string(res.Status)).Str("error", res.Error).Msg("file not ingested")
		}
		results = append(results, res)
	}
	return results
}

// ProcessFile runs one file through the state machine. fileName is the
// display name recorded on the transactions; path is where the bytes live
// (they may differ for uploads spooled to a temp file).
//
// A protected document triggers exactly one retry with the prompted
// credential; a second credential failure fails the file.
func (r *Runner) ProcessFile(path, fileName string, prompt CredentialPrompter) FileResult {
	res := FileResult{ID: uuid.NewString(), FileName: fileName, Status: StatusPending}

	if r.store.HasFile(fileName) {
		res.Status = StatusSkipped
		return res
	}

	rows, err := r.extractOnce(path, fileName, "")
	if err != nil {
		if !errors.Is(err, decoder.ErrCredentialRequired) {
			res.Status = StatusFailed
			res.Error = err.Error()
			return res
		}

		res.Status = StatusAwaitingCredential
		if prompt == nil {
			res.Error = decoder.ErrCredentialRequired.Error()
			return res
		}
		credential, ok := prompt(fileName)
		if !ok {
			res.Status = StatusAbandoned
			return res
		}

		res.Status = StatusRetrying
		rows, err = r.extractOnce(path, fileName, credential)
		if err != nil {
			res.Status = StatusFailed
			res.Error = err.Error()
			return res
		}
	}

	added, err := r.store.Ingest(fileName, rows)
	if err != nil {
		// Raced with another upload of the same name.
		res.Status = StatusSkipped
		return res
	}

	res.Status = StatusSucceeded
	res.Rows = len(rows)
	res.Added = added
	return res
}

func (r *Runner) extractOnce(path, fileName, credential string) ([]models.Transaction, error) {
	doc, err := decoder.Open(path, credential)
	if err != nil {
		return nil, err
	}
	defer doc.Close()
	return r.extractor.ExtractFile(doc, fileName)
}
