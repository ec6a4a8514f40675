package config

import "errors"

var (
	// ErrUnknownInfluencer indicates an influencer, emitter or renderer type with no
	// configuration form.
	ErrUnknownInfluencer = errors.New("config: unknown influencer type")

	// ErrUnknownShape indicates a spawn shape kind that cannot be built or described.
	ErrUnknownShape = errors.New("config: unknown spawn shape")

	// ErrAssetNotFound indicates a region or template name missing from the catalog.
	ErrAssetNotFound = errors.New("config: asset not found")

	// ErrTemplateCycle indicates nested templates that reference each other.
	ErrTemplateCycle = errors.New("config: nested template cycle")

	// ErrUnknownPreset indicates a preset name that is not built in.
	ErrUnknownPreset = errors.New("config: unknown preset")
)
