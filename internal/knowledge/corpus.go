package knowledge

// Corpus returns the procurement reference sentences retrieval draws from,
// three per workflow topic. The set is fixed: it is embedded once at
// startup and never mutated.
func Corpus() []string {
	out := make([]string, len(corpus))
	copy(out, corpus)
	return out
}

var corpus = []string{
	// Business to technical requirements
	"Business requirements for procurement focus on desired outcomes, while technical requirements detail specific specifications, functionalities, and constraints that suppliers must meet.",
	"Technical requirements should be SMART: Specific, Measurable, Achievable, Relevant, and Time-bound to ensure clear communication with vendors.",
	"Non-functional requirements include performance metrics, security standards, scalability needs, and compliance requirements essential for procurement decisions.",

	// RFP generation
	"An effective RFP includes project overview, technical specifications, vendor qualifications, evaluation criteria, timeline, budget constraints, and submission guidelines.",
	"RFP documents should balance specificity with flexibility to allow vendors to propose innovative solutions while meeting core requirements.",
	"Prompt engineering techniques in RFP generation involve structured questioning, clear constraints, and precise language to ensure comprehensive vendor responses.",

	// Vendor matching
	"Vendor selection criteria include technical capabilities, past performance, financial stability, compliance history, and alignment with project requirements.",
	"Historical vendor data analysis helps identify patterns in delivery reliability, quality consistency, and contract compliance that predict future performance.",
	"Objective vendor ranking methodologies use weighted scoring systems across multiple parameters to mitigate personal bias in the selection process.",

	// Tender email generation
	"Professional tender emails should include a formal introduction, clear deadlines, submission instructions, contact information, and confidentiality notices.",
	"Email communication for tenders should maintain consistency in branding, tone, and messaging aligned with the organization's communication standards.",
	"Effective tender emails balance information completeness with conciseness to ensure vendors understand requirements without unnecessary complexity.",

	// Bid evaluation
	"Comparative bid analysis techniques include normalized scoring, weighted criteria evaluation, total cost of ownership calculations, and risk-adjusted valuations.",
	"Multi-dimensional bid evaluation frameworks consider pricing structure, implementation timeline, technical compliance, support services, and innovation potential.",
	"Transparent evaluation processes document decision rationale, scoring methodologies, and comparative analyses to support auditable procurement decisions.",

	// Negotiation strategy
	"BATNA (Best Alternative To a Negotiated Agreement) establishes the walkaway threshold and strengthens negotiating position in vendor discussions.",
	"Effective negotiation strategies balance price considerations with value factors including quality, reliability, support, and long-term partnership potential.",
	"Scenario planning for negotiations prepares for multiple potential vendor responses and establishes contingency approaches for various negotiation paths.",

	// Risk assessment and contract drafting
	"Comprehensive risk assessments evaluate supplier financial stability, operational reliability, compliance history, geographic risk, and cybersecurity posture.",
	"Contract risk mitigation clauses include performance guarantees, service level agreements, liability provisions, termination rights, and dispute resolution mechanisms.",
	"Effective contracts balance legal protection with partnership building by establishing clear expectations, communication channels, and mutual success metrics.",
}
