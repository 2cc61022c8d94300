package draft

import (
	"github.com/google/uuid"
	"github.com/mark3labs/attachr/internal/catalog"
	"github.com/mark3labs/attachr/internal/logger"
)

// Step is the wizard position.
type Step int

const (
	StepSearch Step = iota
	StepConfigure
	StepReview
)

// String returns the step title.
func (s Step) String() string {
	switch s {
	case StepSearch:
		return "Select product"
	case StepConfigure:
		return "Configure variants"
	case StepReview:
		return "Review & confirm"
	default:
		return "Unknown"
	}
}

// Session is a snapshot of the wizard's working data.
type Session struct {
	Product        *catalog.Product
	Variants       []catalog.Variant
	VariantsLoaded bool
	Selection      Selection
	Regions        []catalog.Region
	Locations      []catalog.StockLocation
}

// Controller owns the session and the step transitions. It is driven from a
// single event loop and holds no locks.
//
// The generation counter is bumped whenever in-flight responses must be
// discarded: on open, on product change and on close.
type Controller struct {
	open          bool
	step          Step
	session       Session
	generation    uint64
	submissionKey string
	onClose       func()
}

// NewController returns a closed controller. onClose, when set, is called on
// every Close.
func NewController(onClose func()) *Controller {
	return &Controller{onClose: onClose}
}

// Open starts a fresh session at the search step with the given reference data.
func (c *Controller) Open(regions []catalog.Region, locations []catalog.StockLocation) {
	c.generation++
	c.open = true
	c.step = StepSearch
	c.session = Session{
		Regions:   append([]catalog.Region(nil), regions...),
		Locations: append([]catalog.StockLocation(nil), locations...),
	}
	c.submissionKey = ""
	logger.Debug("wizard opened (generation %d, %d regions, %d locations)", c.generation, len(regions), len(locations))
}

// SetReference stores regions and stock locations loaded after Open.
// Responses tagged with an old generation are dropped.
func (c *Controller) SetReference(generation uint64, regions []catalog.Region, locations []catalog.StockLocation) bool {
	if !c.Current(generation) {
		return false
	}
	c.session.Regions = append([]catalog.Region(nil), regions...)
	c.session.Locations = append([]catalog.StockLocation(nil), locations...)
	return true
}

// SelectProduct stores the product, clears the selection and moves to the
// configure step. It returns the generation the variant-detail fetch must be
// tagged with. Products that are not attachable are refused.
func (c *Controller) SelectProduct(p catalog.Product) (uint64, bool) {
	if !c.open || !p.Status.IsAttachable() {
		return 0, false
	}
	c.generation++
	product := p
	c.session.Product = &product
	c.session.Variants = nil
	c.session.VariantsLoaded = false
	c.session.Selection = Selection{}
	c.submissionKey = ""
	c.step = StepConfigure
	logger.Debug("product %s selected (generation %d)", p.ID, c.generation)
	return c.generation, true
}

// SetVariants stores a variant-detail response. Responses tagged with an old
// generation are dropped and false is returned.
func (c *Controller) SetVariants(generation uint64, variants []catalog.Variant) bool {
	if !c.Current(generation) {
		logger.Debug("dropping stale variant response (generation %d, current %d)", generation, c.generation)
		return false
	}
	c.session.Variants = append([]catalog.Variant(nil), variants...)
	c.session.VariantsLoaded = true
	return true
}

// Edit replaces the working selection while on the configure step.
func (c *Controller) Edit(sel Selection) {
	if c.step != StepConfigure {
		return
	}
	c.session.Selection = sel
	c.submissionKey = ""
}

// ConfirmVariants replaces the selection and moves to the review step.
func (c *Controller) ConfirmVariants(sel Selection) {
	c.session.Selection = sel
	c.submissionKey = ""
	c.step = StepReview
}

// GoBack moves one step back without touching session data.
func (c *Controller) GoBack() {
	if c.step > StepSearch {
		c.step--
	}
}

// Close resets everything and notifies the host.
func (c *Controller) Close() {
	c.generation++
	c.open = false
	c.step = StepSearch
	c.session = Session{}
	c.submissionKey = ""
	if c.onClose != nil {
		c.onClose()
	}
}

// SubmissionKey returns the idempotency key for the current selection. The
// key is stable until the selection or product changes, so a retried attach
// of the same payload reuses it.
func (c *Controller) SubmissionKey() string {
	if c.submissionKey == "" {
		c.submissionKey = uuid.NewString()
	}
	return c.submissionKey
}

// AttachRequest builds the attach payload from the current session.
func (c *Controller) AttachRequest() catalog.AttachRequest {
	req := catalog.AttachRequest{Variants: c.session.Selection.Configs()}
	if c.session.Product != nil {
		req.ProductID = c.session.Product.ID
	}
	return req
}

// Current reports whether a response tagged with generation is still wanted.
func (c *Controller) Current(generation uint64) bool {
	return c.open && generation == c.generation
}

func (c *Controller) IsOpen() bool       { return c.open }
func (c *Controller) Step() Step         { return c.step }
func (c *Controller) Generation() uint64 { return c.generation }

// Session returns the current session snapshot. Slices are shared and must
// not be modified.
func (c *Controller) Session() Session { return c.session }
