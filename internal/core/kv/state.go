package kv

// ViewState is the editor state restored when a track is reopened.
type ViewState struct {
	Scale      float64 `json:"scale"`
	PositionMS int64   `json:"position_ms"`
	SelectedID string  `json:"selected_id,omitempty"`
}

// Namespaces and well-known keys.
const (
	NamespaceView = "view"
	NamespaceApp  = "app"

	KeyLastTrack = "last-track"
)

// Views scopes store to per-track view state keyed by track name.
func Views(store KV) *TypedKV[ViewState] {
	return Scoped[ViewState](store, NamespaceView)
}

// App scopes store to application-wide string settings.
func App(store KV) *TypedKV[string] {
	return Scoped[string](store, NamespaceApp)
}
