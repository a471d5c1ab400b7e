package options

// SceneOptions holds the command line settings. Fields are flag pointers.
type SceneOptions struct {
	ScenePath *string // YAML scene manifest; empty selects the built-in desk scene
	AssetsDir *string // base directory for relative texture paths
	Help      *bool
	Width     *int
	Height    *int
	Snapshot  *string // render one frame to this png, jpg or webp file and exit
	Headless  *bool   // use an EGL pbuffer instead of a window (linux only)
	LogLevel  *string
}
