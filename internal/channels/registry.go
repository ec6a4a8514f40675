package channels

// Scratch is the identity of descriptor templates whose real identity is assigned
// per controller.
const Scratch = -1

// Fixed channel identities.
const (
	LifeID = iota
	PositionID
	PreviousPositionID
	ColorID
	TextureRegionID
	Rotation2DID
	Rotation3DID
	ScaleID
	ModelInstanceID
	ParticleControllerID
	AccelerationID
	AngularVelocity2DID
	AngularVelocity3DID

	// FirstScratchID is the first identity handed out by an IDAllocator.
	FirstScratchID
)

var (
	Life              = Descriptor[float32]{ID: LifeID, Stride: 3}
	Position          = Descriptor[float32]{ID: PositionID, Stride: 3}
	PreviousPosition  = Descriptor[float32]{ID: PreviousPositionID, Stride: 3}
	Color             = Descriptor[float32]{ID: ColorID, Stride: 4}
	TextureRegion     = Descriptor[float32]{ID: TextureRegionID, Stride: 6}
	Rotation2D        = Descriptor[float32]{ID: Rotation2DID, Stride: 2}
	Rotation3D        = Descriptor[float32]{ID: Rotation3DID, Stride: 4}
	Scale             = Descriptor[float32]{ID: ScaleID, Stride: 1}
	Acceleration      = Descriptor[float32]{ID: AccelerationID, Stride: 3}
	AngularVelocity2D = Descriptor[float32]{ID: AngularVelocity2DID, Stride: 1}
	AngularVelocity3D = Descriptor[float32]{ID: AngularVelocity3DID, Stride: 3}

	// Interpolation templates (start/diff pairs). Stamp with IDAllocator.Next before use.
	Interpolation  = Descriptor[float32]{ID: Scratch, Stride: 2}
	Interpolation4 = Descriptor[float32]{ID: Scratch, Stride: 4}
	Interpolation6 = Descriptor[float32]{ID: Scratch, Stride: 6}
)

var names = map[int]string{
	LifeID:               "life",
	PositionID:           "position",
	PreviousPositionID:   "previous-position",
	ColorID:              "color",
	TextureRegionID:      "texture-region",
	Rotation2DID:         "rotation-2d",
	Rotation3DID:         "rotation-3d",
	ScaleID:              "scale",
	ModelInstanceID:      "model-instance",
	ParticleControllerID: "particle-controller",
	AccelerationID:       "acceleration",
	AngularVelocity2DID:  "angular-velocity-2d",
	AngularVelocity3DID:  "angular-velocity-3d",
}

// Row offsets inside the fixed channels.
const (
	CurrentLifeOffset = 0
	TotalLifeOffset   = 1
	LifePercentOffset = 2

	RedOffset   = 0
	GreenOffset = 1
	BlueOffset  = 2
	AlphaOffset = 3

	UOffset          = 0
	VOffset          = 1
	U2Offset         = 2
	V2Offset         = 3
	HalfWidthOffset  = 4
	HalfHeightOffset = 5

	CosineOffset = 0
	SineOffset   = 1

	XOffset = 0
	YOffset = 1
	ZOffset = 2
	WOffset = 3

	InterpolationStartOffset = 0
	InterpolationDiffOffset  = 1

	ThetaStartOffset = 0
	ThetaDiffOffset  = 1
	PhiStartOffset   = 2
	PhiDiffOffset    = 3
)

// IDAllocator hands out scratch identities for one controller. It restarts at
// FirstScratchID on Reset, so identities never collide with the fixed table.
type IDAllocator struct {
	next int
}

func NewIDAllocator() *IDAllocator {
	return &IDAllocator{next: FirstScratchID}
}

func (a *IDAllocator) Next() int {
	id := a.next
	a.next++
	return id
}

func (a *IDAllocator) Reset() { a.next = FirstScratchID }

// Default initializers for channels whose zero value is not a sensible default.

func WhiteColor(c *Channel[float32]) {
	for i := range c.Data {
		c.Data[i] = 1
	}
}

func UnitScale(c *Channel[float32]) {
	for i := range c.Data {
		c.Data[i] = 1
	}
}

func IdentityRotation2D(c *Channel[float32]) {
	for i := 0; i < len(c.Data); i += c.Stride {
		c.Data[i+CosineOffset] = 1
		c.Data[i+SineOffset] = 0
	}
}

func IdentityRotation3D(c *Channel[float32]) {
	for i := 0; i < len(c.Data); i += c.Stride {
		c.Data[i+XOffset] = 0
		c.Data[i+YOffset] = 0
		c.Data[i+ZOffset] = 0
		c.Data[i+WOffset] = 1
	}
}

func FullTextureRegion(c *Channel[float32]) {
	for i := 0; i < len(c.Data); i += c.Stride {
		c.Data[i+UOffset] = 0
		c.Data[i+VOffset] = 0
		c.Data[i+U2Offset] = 1
		c.Data[i+V2Offset] = 1
		c.Data[i+HalfWidthOffset] = 0.5
		c.Data[i+HalfHeightOffset] = 0.5
	}
}
