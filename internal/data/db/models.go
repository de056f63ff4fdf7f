package db

// Track is a row of the tracks table.
type Track struct {
	Name       string
	MediaPath  string
	DurationMs int64
	CreatedAt  int64
	UpdatedAt  int64
}

// Subtitle is a row of the subtitles table.
type Subtitle struct {
	Track    string
	Position int64
	ID       string
	Region   string
	StartMs  int64
	EndMs    int64
	Content  string
}

// Journal is a row of the journal table.
type Journal struct {
	ID          int64
	Track       string
	ChangeGroup string
	Source      string
	SubtitleID  string
	StartMs     int64
	EndMs       int64
	CreatedAt   int64
}

// KvStore is a row of the kv_store table.
type KvStore struct {
	Key       string
	Value     []byte
	CreatedAt int64
	UpdatedAt int64
}
