package reveal

// Ease maps linear progress in [0,1] to eased progress.
type Ease func(t float32) float32

func Linear(t float32) float32 { return t }

func EaseInCubic(t float32) float32 { return t * t * t }

func EaseOutCubic(t float32) float32 {
	u := 1 - t
	return 1 - u*u*u
}

// Tween interpolates a single value over a fixed duration, driven by frame
// deltas. A cancelled tween keeps its last value and never advances again.
type Tween struct {
	from, to  float32
	duration  float32
	elapsed   float32
	ease      Ease
	cancelled bool
}

// NewTween creates a tween from -> to over duration seconds. A non-positive
// duration completes on the first Step.
func NewTween(from, to, duration float32, ease Ease) *Tween {
	if ease == nil {
		ease = Linear
	}
	return &Tween{from: from, to: to, duration: duration, ease: ease}
}

// Step advances the tween by delta seconds and returns the new value.
func (tw *Tween) Step(delta float32) float32 {
	if tw.cancelled || tw.Done() {
		return tw.Value()
	}
	if delta > 0 {
		tw.elapsed += delta
	}
	return tw.Value()
}

// Progress returns linear progress in [0,1].
func (tw *Tween) Progress() float32 {
	if tw.duration <= 0 {
		return 1
	}
	p := tw.elapsed / tw.duration
	if p > 1 {
		return 1
	}
	return p
}

func (tw *Tween) Value() float32 {
	return tw.from + (tw.to-tw.from)*tw.ease(tw.Progress())
}

func (tw *Tween) Done() bool { return tw.Progress() >= 1 }

// Cancel stops the tween where it is.
func (tw *Tween) Cancel() { tw.cancelled = true }

func (tw *Tween) Cancelled() bool { return tw.cancelled }

func (tw *Tween) Target() float32 { return tw.to }
