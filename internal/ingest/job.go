package ingest

// Stage names the pipeline position an upload job has reached. Stages move
// strictly forward within one job; Failed is terminal from any stage.
type Stage string

const (
	StageReceived         Stage = "received"
	StageExtracted        Stage = "extracted"
	StageNormalized       Stage = "normalized"
	StageMetadataResolved Stage = "metadata_resolved"
	StageFiled            Stage = "filed"
	StageEmbedded         Stage = "embedded"
	StageStored           Stage = "stored"
	StageDone             Stage = "done"
	StageFailed           Stage = "failed"
)

// UploadJob tracks one ingestion attempt. It lives only for the duration
// of the request and is owned exclusively by the orchestrator.
type UploadJob struct {
	FileID     string
	FileName   string
	StagedPath string
	Stage      Stage
}
