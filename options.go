package softrast

// ContextOption configures a Context during creation.
//
// Example:
//
//	// Default: the context allocates its own framebuffer and depth buffer
//	ctx := softrast.NewContext(800, 600)
//
//	// Borrow caller-owned buffers and disable back-face culling
//	ctx := softrast.NewContext(800, 600,
//	    softrast.WithTarget(fb),
//	    softrast.WithDepthBuffer(db),
//	    softrast.WithCulling(false))
type ContextOption func(*contextOptions)

// contextOptions holds optional configuration for Context creation.
type contextOptions struct {
	target *Framebuffer
	depth  *DepthBuffer
	cull   bool
	blend  BlendMode
}

// defaultOptions returns the default context options.
func defaultOptions() contextOptions {
	return contextOptions{
		target: nil, // allocated by NewContext
		depth:  nil, // allocated by NewContext
		cull:   true,
		blend:  BlendNone,
	}
}

// WithTarget makes the context render into fb instead of allocating its
// own framebuffer. The dimensions must match the context.
func WithTarget(fb *Framebuffer) ContextOption {
	return func(o *contextOptions) {
		o.target = fb
	}
}

// WithDepthBuffer makes the context test against db instead of allocating
// its own depth buffer. The dimensions must match the context.
func WithDepthBuffer(db *DepthBuffer) ContextOption {
	return func(o *contextOptions) {
		o.depth = db
	}
}

// WithCulling enables or disables back-face culling. Enabled by default.
func WithCulling(enabled bool) ContextOption {
	return func(o *contextOptions) {
		o.cull = enabled
	}
}

// WithBlendMode sets the initial blend mode. Defaults to BlendNone.
func WithBlendMode(m BlendMode) ContextOption {
	return func(o *contextOptions) {
		o.blend = m
	}
}
