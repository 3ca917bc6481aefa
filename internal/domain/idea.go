package domain

import (
	"fmt"
	"strings"
	"time"
)

// DirectionCount is the number of research directions (and ideas) in every
// pipeline result.
const DirectionCount = 3

// GeneratedAtLayout renders PipelineResult.GeneratedAt.
const GeneratedAtLayout = "2006-01-02 15:04:05"

// ResearchDirection is a named axis of inquiry proposed for a topic.
type ResearchDirection struct {
	Direction    string `json:"direction"`
	Rationale    string `json:"rationale"`
	GapAddressed string `json:"gap_addressed"`
}

// ResearchIdea is a full research proposal document.
type ResearchIdea struct {
	Title       string      `json:"title"`
	Overview    Overview    `json:"overview"`
	Methodology Methodology `json:"methodology"`
	Feasibility Feasibility `json:"feasibility"`
	Impact      Impact      `json:"impact"`
}

// Overview summarizes the motivation of an idea.
type Overview struct {
	Background         string   `json:"background"`
	ResearchHypothesis string   `json:"research_hypothesis"`
	Significance       string   `json:"significance"`
	Novelty            string   `json:"novelty"`
	ExpectedOutcomes   []string `json:"expected_outcomes"`
}

// Methodology describes how an idea would be investigated.
type Methodology struct {
	ResearchDesign     string              `json:"research_design"`
	DataCollection     DataCollection      `json:"data_collection"`
	AnalysisTechniques []AnalysisTechnique `json:"analysis_techniques"`
	ExperimentalSetup  ExperimentalSetup   `json:"experimental_setup"`
	ValidationMethods  []string            `json:"validation_methods"`
}

// DataCollection lists data sources and collection methods.
type DataCollection struct {
	Sources    []string `json:"sources"`
	Methods    []string `json:"methods"`
	SampleSize string   `json:"sample_size"`
	DataTypes  []string `json:"data_types"`
}

// AnalysisTechnique is one analysis method applied to collected data.
type AnalysisTechnique struct {
	Technique       string `json:"technique"`
	Purpose         string `json:"purpose"`
	Implementation  string `json:"implementation"`
	ExpectedResults string `json:"expected_results"`
}

// ExperimentalSetup lays out phases, controls and variables.
type ExperimentalSetup struct {
	Phases    []Phase   `json:"phases"`
	Controls  []string  `json:"controls"`
	Variables Variables `json:"variables"`
}

// Phase is one time-boxed stage of the work plan.
type Phase struct {
	Phase        string   `json:"phase"`
	Duration     string   `json:"duration"`
	Activities   []string `json:"activities"`
	Deliverables []string `json:"deliverables"`
}

// Variables groups the experiment variables by role.
type Variables struct {
	Independent []string `json:"independent"`
	Dependent   []string `json:"dependent"`
	Confounding []string `json:"confounding"`
}

// Feasibility captures requirements, timeline and risks.
type Feasibility struct {
	TechnicalRequirements []string      `json:"technical_requirements"`
	ResourceNeeds         ResourceNeeds `json:"resource_needs"`
	Timeline              Timeline      `json:"timeline"`
	RiskAssessment        []Risk        `json:"risk_assessment"`
}

// ResourceNeeds lists the resources an idea depends on.
type ResourceNeeds struct {
	Computational string `json:"computational"`
	Data          string `json:"data"`
	Personnel     string `json:"personnel"`
	Equipment     string `json:"equipment"`
}

// Timeline is the overall schedule of an idea.
type Timeline struct {
	TotalDuration string      `json:"total_duration"`
	Milestones    []Milestone `json:"milestones"`
}

// Milestone is a checkpoint in the timeline.
type Milestone struct {
	Milestone       string `json:"milestone"`
	Timeframe       string `json:"timeframe"`
	SuccessCriteria string `json:"success_criteria"`
}

// Risk is one entry of the risk assessment.
type Risk struct {
	Risk        string `json:"risk"`
	Probability string `json:"probability"`
	Impact      string `json:"impact"`
	Mitigation  string `json:"mitigation"`
}

// Impact describes the expected contribution of an idea.
type Impact struct {
	ScientificContribution   string   `json:"scientific_contribution"`
	PracticalApplications    []string `json:"practical_applications"`
	SocietalBenefits         []string `json:"societal_benefits"`
	EconomicPotential        string   `json:"economic_potential"`
	FutureResearchDirections []string `json:"future_research_directions"`
}

// PipelineResult is the outcome of one idea-generation run. It is built
// once per request and never stored.
type PipelineResult struct {
	Topic          string
	FocusArea      string
	PapersAnalyzed int
	Directions     [DirectionCount]ResearchDirection
	Ideas          [DirectionCount]ResearchIdea
	GeneratedAt    time.Time

	// LiteratureFallback is set when synthetic papers replaced the search results.
	LiteratureFallback bool
	// DirectionsFallback is set when fallback directions replaced or padded model output.
	DirectionsFallback bool
}

// Degraded reports whether any stage substituted fallback content.
func (r *PipelineResult) Degraded() bool {
	return r.LiteratureFallback || r.DirectionsFallback
}

// GeneratedAtString renders GeneratedAt as YYYY-MM-DD HH:MM:SS.
func (r *PipelineResult) GeneratedAtString() string {
	return r.GeneratedAt.Format(GeneratedAtLayout)
}

// Validate reports the first required field of the idea that is empty.
// A nil result means the document is schema-complete.
func (i *ResearchIdea) Validate() error {
	c := &fieldChecker{}

	c.str("title", i.Title)

	o := i.Overview
	c.str("overview.background", o.Background)
	c.str("overview.research_hypothesis", o.ResearchHypothesis)
	c.str("overview.significance", o.Significance)
	c.str("overview.novelty", o.Novelty)
	c.list("overview.expected_outcomes", o.ExpectedOutcomes)

	m := i.Methodology
	c.str("methodology.research_design", m.ResearchDesign)
	c.list("methodology.data_collection.sources", m.DataCollection.Sources)
	c.list("methodology.data_collection.methods", m.DataCollection.Methods)
	c.str("methodology.data_collection.sample_size", m.DataCollection.SampleSize)
	c.list("methodology.data_collection.data_types", m.DataCollection.DataTypes)
	if len(m.AnalysisTechniques) == 0 {
		c.fail("methodology.analysis_techniques")
	}
	for n, t := range m.AnalysisTechniques {
		p := fmt.Sprintf("methodology.analysis_techniques[%d].", n)
		c.str(p+"technique", t.Technique)
		c.str(p+"purpose", t.Purpose)
		c.str(p+"implementation", t.Implementation)
		c.str(p+"expected_results", t.ExpectedResults)
	}
	if len(m.ExperimentalSetup.Phases) == 0 {
		c.fail("methodology.experimental_setup.phases")
	}
	for n, ph := range m.ExperimentalSetup.Phases {
		p := fmt.Sprintf("methodology.experimental_setup.phases[%d].", n)
		c.str(p+"phase", ph.Phase)
		c.str(p+"duration", ph.Duration)
		c.list(p+"activities", ph.Activities)
		c.list(p+"deliverables", ph.Deliverables)
	}
	c.list("methodology.experimental_setup.controls", m.ExperimentalSetup.Controls)
	c.list("methodology.experimental_setup.variables.independent", m.ExperimentalSetup.Variables.Independent)
	c.list("methodology.experimental_setup.variables.dependent", m.ExperimentalSetup.Variables.Dependent)
	c.list("methodology.experimental_setup.variables.confounding", m.ExperimentalSetup.Variables.Confounding)
	c.list("methodology.validation_methods", m.ValidationMethods)

	f := i.Feasibility
	c.list("feasibility.technical_requirements", f.TechnicalRequirements)
	c.str("feasibility.resource_needs.computational", f.ResourceNeeds.Computational)
	c.str("feasibility.resource_needs.data", f.ResourceNeeds.Data)
	c.str("feasibility.resource_needs.personnel", f.ResourceNeeds.Personnel)
	c.str("feasibility.resource_needs.equipment", f.ResourceNeeds.Equipment)
	c.str("feasibility.timeline.total_duration", f.Timeline.TotalDuration)
	if len(f.Timeline.Milestones) == 0 {
		c.fail("feasibility.timeline.milestones")
	}
	for n, ms := range f.Timeline.Milestones {
		p := fmt.Sprintf("feasibility.timeline.milestones[%d].", n)
		c.str(p+"milestone", ms.Milestone)
		c.str(p+"timeframe", ms.Timeframe)
		c.str(p+"success_criteria", ms.SuccessCriteria)
	}
	if len(f.RiskAssessment) == 0 {
		c.fail("feasibility.risk_assessment")
	}
	for n, r := range f.RiskAssessment {
		p := fmt.Sprintf("feasibility.risk_assessment[%d].", n)
		c.str(p+"risk", r.Risk)
		c.str(p+"probability", r.Probability)
		c.str(p+"impact", r.Impact)
		c.str(p+"mitigation", r.Mitigation)
	}

	im := i.Impact
	c.str("impact.scientific_contribution", im.ScientificContribution)
	c.list("impact.practical_applications", im.PracticalApplications)
	c.list("impact.societal_benefits", im.SocietalBenefits)
	c.str("impact.economic_potential", im.EconomicPotential)
	c.list("impact.future_research_directions", im.FutureResearchDirections)

	return c.err
}

// fieldChecker keeps the first missing field it sees.
type fieldChecker struct {
	err error
}

func (c *fieldChecker) fail(field string) {
	if c.err == nil {
		c.err = &IncompleteDocumentError{Field: field}
	}
}

func (c *fieldChecker) str(field, v string) {
	if strings.TrimSpace(v) == "" {
		c.fail(field)
	}
}

func (c *fieldChecker) list(field string, v []string) {
	if len(v) == 0 {
		c.fail(field)
		return
	}
	for n, s := range v {
		if strings.TrimSpace(s) == "" {
			c.fail(fmt.Sprintf("%s[%d]", field, n))
			return
		}
	}
}
