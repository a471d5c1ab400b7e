package textures

// Handle is an opaque GPU texture name.
type Handle uint32

// Backend owns the GPU side of a texture: upload, binding to a unit, release.
type Backend interface {
	// Upload creates a texture from img and returns its handle. The backend
	// applies the sampling policy: repeat on S and T, linear filtering and a
	// generated mipmap chain.
	Upload(img *Image) (Handle, error)

	// Bind attaches h to texture unit `unit`.
	Bind(unit int, h Handle)

	// Release frees the GPU texture.
	Release(h Handle)
}
