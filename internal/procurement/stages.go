package procurement

import (
	"fmt"
	"strings"
)

// Stage identifies one step of the procurement workflow. The set is closed:
// every Stage value flowing through the pipeline comes from the constants
// below, and ParseStage rejects anything else instead of falling back to a
// default template.
type Stage string

const (
	StageBusinessToTechnical Stage = "business_to_technical_req"
	StageRFPGeneration       Stage = "rfp_generation"
	StageVendorMatching      Stage = "vendor_matching"
	StageTenderEmail         Stage = "tender_email"
	StageBidEvaluation       Stage = "bid_evaluation"
	StageNegotiationStrategy Stage = "negotiation_strategy"
	StageRiskContract        Stage = "risk_contract"
)

// stageOrder is the fixed workflow order. The first four stages form the
// requirements-to-tender chain, the last three the bid-to-contract chain;
// the two chains do not feed each other.
var stageOrder = []Stage{
	StageBusinessToTechnical,
	StageRFPGeneration,
	StageVendorMatching,
	StageTenderEmail,
	StageBidEvaluation,
	StageNegotiationStrategy,
	StageRiskContract,
}

// Stages returns all stages in workflow order.
func Stages() []Stage {
	out := make([]Stage, len(stageOrder))
	copy(out, stageOrder)
	return out
}

// ParseStage maps a wire identifier to a Stage. Unknown identifiers are an
// error, never a silent fallback.
func ParseStage(v string) (Stage, error) {
	s := Stage(strings.TrimSpace(v))
	if _, ok := stageSpecs[s]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStage, v)
	}
	return s, nil
}

// stageSpec carries the immutable descriptor for one stage: display strings,
// the prompt template with its {context} and {question} slots, and the
// predecessor stages whose outputs seed this stage's input.
type stageSpec struct {
	title         string
	inputLabel    string
	seededLabel   string
	seedNote      string
	resultHeading string
	template      string
	predecessors  []Stage
}

var stageSpecs = map[Stage]stageSpec{
	StageBusinessToTechnical: {
		title:         "Business to Technical Requirements Conversion",
		inputLabel:    "Enter Business Requirements:",
		resultHeading: "Technical Requirements",
		template:      businessToTechnicalTemplate,
	},
	StageRFPGeneration: {
		title:         "RFP Generation",
		inputLabel:    "Enter Technical Requirements:",
		seededLabel:   "Technical Requirements for RFP:",
		seedNote:      "Using technical requirements from previous stage. You can edit if needed.",
		resultHeading: "Request for Proposal (RFP)",
		template:      rfpGenerationTemplate,
		predecessors:  []Stage{StageBusinessToTechnical},
	},
	StageVendorMatching: {
		title:         "Vendor Matching",
		inputLabel:    "Enter RFP Document:",
		seededLabel:   "RFP Document:",
		seedNote:      "Using RFP from previous stage. You can edit if needed.",
		resultHeading: "Vendor Selection Results",
		template:      vendorMatchingTemplate,
		predecessors:  []Stage{StageRFPGeneration},
	},
	StageTenderEmail: {
		title:         "Tender Email Generation",
		inputLabel:    "Enter RFP and Vendor Information:",
		seededLabel:   "RFP and Vendor Information:",
		seedNote:      "Using RFP and vendor selection from previous stages. You can edit if needed.",
		resultHeading: "Tender Email",
		template:      tenderEmailTemplate,
		predecessors:  []Stage{StageRFPGeneration, StageVendorMatching},
	},
	StageBidEvaluation: {
		title:         "Bid Evaluation",
		inputLabel:    "Enter Bid Information:",
		resultHeading: "Bid Evaluation Results",
		template:      bidEvaluationTemplate,
	},
	StageNegotiationStrategy: {
		title:         "Negotiation Strategy & BATNA Analysis",
		inputLabel:    "Enter Top Bids:",
		seededLabel:   "Top Bids for Negotiation:",
		seedNote:      "Using top bids from previous stage. You can edit if needed.",
		resultHeading: "Negotiation Strategy & BATNA",
		template:      negotiationStrategyTemplate,
		predecessors:  []Stage{StageBidEvaluation},
	},
	StageRiskContract: {
		title:         "Risk Assessment & Contract Drafting",
		inputLabel:    "Enter Vendor and Bid Information:",
		seededLabel:   "Vendor and Bid Information:",
		seedNote:      "Using negotiation strategy and bid information from previous stages. You can edit if needed.",
		resultHeading: "Risk Assessment & Contract Elements",
		template:      riskContractTemplate,
		predecessors:  []Stage{StageBidEvaluation, StageNegotiationStrategy},
	},
}

// Title returns the stage's display title.
func (s Stage) Title() string { return stageSpecs[s].title }

// InputLabel returns the label for the stage's input when nothing was seeded.
func (s Stage) InputLabel() string { return stageSpecs[s].inputLabel }

// SeededInputLabel returns the label shown when the input was pre-filled
// from predecessor output. Stages with no predecessors return the plain label.
func (s Stage) SeededInputLabel() string {
	spec := stageSpecs[s]
	if spec.seededLabel == "" {
		return spec.inputLabel
	}
	return spec.seededLabel
}

// SeedNote returns the advisory shown alongside a seeded input, empty for
// stages that never seed.
func (s Stage) SeedNote() string { return stageSpecs[s].seedNote }

// ResultHeading returns the heading used when presenting the stage's output.
func (s Stage) ResultHeading() string { return stageSpecs[s].resultHeading }

// Template returns the stage's prompt template text.
func (s Stage) Template() string { return stageSpecs[s].template }

// Predecessors returns the stages whose outputs seed this stage's input.
func (s Stage) Predecessors() []Stage {
	src := stageSpecs[s].predecessors
	out := make([]Stage, len(src))
	copy(out, src)
	return out
}

const (
	contextSlot  = "{context}"
	questionSlot = "{question}"
)

// ComposePrompt fills the stage template's {context} slot with retrieved
// reference text and its {question} slot with the user's input, verbatim.
func ComposePrompt(stage Stage, contextText, question string) (string, error) {
	spec, ok := stageSpecs[stage]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStage, stage)
	}
	prompt := strings.ReplaceAll(spec.template, contextSlot, contextText)
	prompt = strings.ReplaceAll(prompt, questionSlot, question)
	return prompt, nil
}

const businessToTechnicalTemplate = `You are an expert procurement automation agent for TransGlobal Industries.

Use the following retrieved context to enhance your analysis:
{context}

Based on the business requirements provided by the user, convert them into detailed technical requirements.

Business Requirements:
{question}

Your output must include:
1. A comprehensive set of functional requirements (specific capabilities and features)
2. Non-functional requirements (performance, security, scalability, etc.)
3. Technical specifications with appropriate metrics where possible
4. Constraints and dependencies that vendors should be aware of

Format your response in markdown with clear sections. Be specific, measurable, and precise.`

const rfpGenerationTemplate = `You are an expert procurement automation agent for TransGlobal Industries.

Use the following retrieved context to enhance your RFP document:
{context}

Based on the technical requirements provided by the user, generate a complete Request for Proposal (RFP) document.

Technical Requirements:
{question}

Your RFP must include:
1. Project overview and objectives
2. Detailed technical specifications and requirements
3. Expected deliverables and timeline
4. Evaluation criteria and vendor qualifications
5. Submission guidelines and deadlines
6. Terms and conditions

Format your response as a professional RFP document using markdown. Be comprehensive and avoid ambiguity.`

const vendorMatchingTemplate = `You are an expert procurement automation agent for TransGlobal Industries.

Use the following retrieved context to enhance your vendor analysis:
{context}

Based on the technical requirements and historical vendor data provided, identify and rank suitable vendors.

Requirements and Vendor Data:
{question}

Your analysis must include:
1. Top 3-5 recommended vendors with rankings
2. Justification for each selection based on historical performance
3. Alignment between vendor capabilities and project requirements
4. Potential risks and considerations for each recommended vendor

Format your response in markdown with clear sections. Provide objective analysis without personal bias.`

const tenderEmailTemplate = `You are an expert procurement automation agent for TransGlobal Industries.

Use the following retrieved context to enhance your email:
{context}

Based on the RFP document and vendor information provided, generate a professional email to accompany the tender document.

RFP and Vendor Information:
{question}

Your email must:
1. Be professionally formatted with proper salutation and closing
2. Clearly introduce the procurement opportunity
3. Provide key dates and submission instructions
4. Include contact information for queries
5. Maintain TransGlobal Industries' professional tone and branding

Write a complete, ready-to-send email that is clear, concise, and professional.`

const bidEvaluationTemplate = `You are an expert procurement automation agent for TransGlobal Industries.

Use the following retrieved context to enhance your bid evaluation:
{context}

Based on the bid information provided, evaluate and rank the vendor proposals.

Bid Information:
{question}

Your evaluation must include:
1. Comparative analysis of all bids received
2. Scoring for each bid against key criteria (price, quality, timeline, capabilities)
3. Identification of the top two options with detailed justification
4. Strengths and weaknesses of each bid

Format your response in markdown with clear sections and tables where appropriate. Provide objective analysis.`

const negotiationStrategyTemplate = `You are an expert procurement automation agent for TransGlobal Industries.

Use the following retrieved context to enhance your negotiation strategy:
{context}

Based on the top two bids provided, develop a negotiation strategy including BATNA analysis.

Bid Information:
{question}

Your strategy must include:
1. BATNA determination for each negotiation
2. Key negotiation points and desired outcomes
3. Potential concessions and their value
4. Recommended approaches and tactics
5. Alternative options if negotiations fail

Format your response in markdown with clear, actionable recommendations. Be strategic and thorough.`

const riskContractTemplate = `You are an expert procurement automation agent for TransGlobal Industries.

Use the following retrieved context to enhance your risk assessment and contract draft:
{context}

Based on the vendor and bid information provided, assess risks and draft key contract components.

Vendor and Bid Information:
{question}

Your output must include:
1. Comprehensive risk assessment identifying potential issues
2. Risk mitigation strategies and contingency plans
3. Key contract clauses to address identified risks
4. Performance metrics and SLAs to include in the contract
5. Dispute resolution mechanisms and termination conditions

Format your response in markdown with clear sections. Be thorough and focus on protecting TransGlobal Industries' interests.`
