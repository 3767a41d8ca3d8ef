package overlay

// Handle identifies one live presentation returned by a Presenter.
// Handles are never reused by a Presenter instance.
type Handle uint64

// Presenter displays content surfaces over the current screen.
//
// Present must not block on animations. Dismiss returns a channel that is
// closed once the surface is gone from the screen; with animated set to
// false it may already be closed when returned. Dismissing an unknown or
// already dismissed handle returns a closed channel.
type Presenter[C any] interface {
	Present(content C, cfg Config, onBackdropTap func()) Handle
	Dismiss(h Handle, animated bool) <-chan struct{}
}

// Destroyer is implemented by content that owns resources (textures, timers,
// subscriptions). Destroy is called once the content can never be shown again.
type Destroyer interface {
	Destroy()
}

// Destroy calls Destroy on content when it implements Destroyer.
func Destroy(content any) {
	if d, ok := content.(Destroyer); ok {
		d.Destroy()
	}
}

// Closed returns an already closed completion channel.
func Closed() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
