package ideas

import (
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/helixir/research-ideas-service/internal/domain"
)

// SynthesizeIdea expands one direction into a complete research idea.
// ordinal is the 1-based position of the direction and names it when the
// direction name is blank. The expansion is a pure function of its inputs.
func SynthesizeIdea(direction domain.ResearchDirection, topic string, ordinal int) domain.ResearchIdea {
	name := strings.TrimSpace(direction.Direction)
	if name == "" {
		name = fmt.Sprintf("Research Direction %d", ordinal)
	}
	lower := strings.ToLower(name)

	return domain.ResearchIdea{
		Title:       fmt.Sprintf("%s: Advanced %s Framework", name, topic),
		Overview:    overviewFor(lower, topic),
		Methodology: methodologyFor(topic),
		Feasibility: feasibilityFor(topic),
		Impact:      impactFor(lower, topic),
	}
}

// SynthesizeIdeas expands the directions concurrently and returns ideas
// index-aligned with them. An error means an expansion produced an
// incomplete document.
func SynthesizeIdeas(directions [domain.DirectionCount]domain.ResearchDirection, topic string) ([domain.DirectionCount]domain.ResearchIdea, error) {
	var ideas [domain.DirectionCount]domain.ResearchIdea

	var g errgroup.Group
	for i := range directions {
		g.Go(func() error {
			idea := SynthesizeIdea(directions[i], topic, i+1)
			if err := idea.Validate(); err != nil {
				return fmt.Errorf("idea %d: %w", i+1, err)
			}
			ideas[i] = idea
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return ideas, err
	}
	return ideas, nil
}

func overviewFor(direction, topic string) domain.Overview {
	return domain.Overview{
		Background: fmt.Sprintf("This research aims to develop a comprehensive framework for %s in %s. "+
			"Current approaches often lack integrated solutions and comprehensive methodologies, leading to fragmented "+
			"understanding and limited practical applicability. This study will address these limitations by "+
			"synthesizing existing knowledge and proposing novel approaches.", direction, topic),
		ResearchHypothesis: fmt.Sprintf("By developing an integrated %s framework, we can significantly improve %s "+
			"performance and applicability, leading to more robust and generalizable solutions than current "+
			"state-of-the-art methods.", direction, topic),
		Significance: fmt.Sprintf("This research addresses critical gaps in %s by providing a unified approach to %s. "+
			"It will contribute to a deeper theoretical understanding and offer practical solutions for real-world "+
			"challenges, potentially opening new avenues for interdisciplinary research.", topic, direction),
		Novelty: fmt.Sprintf("Novel integration of %s approaches with %s, providing the first comprehensive framework "+
			"that addresses current methodological gaps and technical limitations identified in recent literature. "+
			"This framework will introduce new algorithms and techniques for enhanced performance.", direction, topic),
		ExpectedOutcomes: []string{
			"Improved performance metrics (e.g., accuracy, efficiency)",
			fmt.Sprintf("Enhanced applicability across diverse %s sub-domains", topic),
			"Development of a robust and scalable framework",
			fmt.Sprintf("New theoretical insights into %s principles", topic),
		},
	}
}

func methodologyFor(topic string) domain.Methodology {
	return domain.Methodology{
		ResearchDesign: fmt.Sprintf("A mixed-methods approach combining theoretical analysis, computational modeling, "+
			"and experimental validation. The study will involve iterative design and testing cycles to refine the "+
			"proposed framework for %s.", topic),
		DataCollection: domain.DataCollection{
			Sources: []string{
				"Publicly available benchmark datasets (e.g., ImageNet, arXiv)",
				"Simulated data generated from theoretical models",
				"Experimental data collected from laboratory setups",
			},
			Methods: []string{
				"Systematic literature review to identify existing methods and gaps",
				"Development of novel algorithms and computational models",
				"Implementation and optimization of the framework in a reproducible software stack",
				"Rigorous experimental evaluation on diverse datasets",
			},
			SampleSize: "Not applicable for theoretical and computational work; experimental validation will use " +
				"sufficiently large datasets to ensure statistical significance.",
			DataTypes: []string{
				"Quantitative (performance metrics, computational costs)",
				"Qualitative (case studies, expert evaluations)",
				"Mixed-methods (combining both for comprehensive assessment)",
			},
		},
		AnalysisTechniques: []domain.AnalysisTechnique{
			{
				Technique:       "Advanced statistical analysis (ANOVA, regression, t-tests)",
				Purpose:         "To identify patterns, relationships, and statistical significance of results",
				Implementation:  "Using standard scientific computing and statistics libraries",
				ExpectedResults: "Quantifiable improvements in performance and efficiency compared to baseline methods.",
			},
			{
				Technique:       "Comparative analysis with state-of-the-art models",
				Purpose:         "To benchmark the proposed framework against existing solutions",
				Implementation:  "Implementing and testing leading models from recent literature",
				ExpectedResults: "Demonstration of superior performance or novel capabilities.",
			},
		},
		ExperimentalSetup: domain.ExperimentalSetup{
			Phases: []domain.Phase{
				{
					Phase:    "Phase 1: Literature Review and Theoretical Framework Development",
					Duration: "3 months",
					Activities: []string{
						"Identify key concepts and existing models",
						"Formulate initial theoretical framework",
						"Define research questions and hypotheses",
					},
					Deliverables: []string{
						"Comprehensive literature review report",
						"Initial framework design document",
						"Refined research questions",
					},
				},
				{
					Phase:    "Phase 2: Algorithm Development and Implementation",
					Duration: "6 months",
					Activities: []string{
						"Design and develop novel algorithms",
						"Implement the framework in a suitable programming environment",
						"Conduct preliminary testing and debugging",
					},
					Deliverables: []string{
						"Implemented algorithms and code repository",
						"Unit test reports",
						"Initial performance benchmarks",
					},
				},
				{
					Phase:    "Phase 3: Experimental Validation and Evaluation",
					Duration: "9 months",
					Activities: []string{
						"Set up experimental environment",
						"Run experiments on benchmark and simulated datasets",
						"Collect and analyze performance data",
					},
					Deliverables: []string{
						"Experimental results and data analysis reports",
						"Performance comparison charts",
						"Refined framework based on results",
					},
				},
				{
					Phase:    "Phase 4: Refinement, Documentation, and Dissemination",
					Duration: "6 months",
					Activities: []string{
						"Refine the framework based on evaluation results",
						"Prepare comprehensive documentation",
						"Write research papers and present findings at conferences",
					},
					Deliverables: []string{
						"Finalized framework and code",
						"Technical documentation",
						"Published research papers and presentations",
					},
				},
			},
			Controls: []string{
				"Controlled experimental conditions to minimize external variables",
				"Randomized data splitting for training and testing",
				"Use of established benchmarks for fair comparison",
			},
			Variables: domain.Variables{
				Independent: []string{"Proposed framework parameters", "Dataset characteristics", "Computational resources"},
				Dependent: []string{
					"Performance metrics (e.g., accuracy, F1-score, processing time)",
					"Resource utilization (e.g., memory, CPU)",
					"Scalability",
				},
				Confounding: []string{"Hardware variations", "Software environment differences", "Random initialization effects"},
			},
		},
		ValidationMethods: []string{
			"Cross-validation on multiple datasets",
			"Comparison with theoretical predictions",
			"Expert review and feedback",
			"Replication by independent researchers",
		},
	}
}

func feasibilityFor(topic string) domain.Feasibility {
	return domain.Feasibility{
		TechnicalRequirements: []string{
			"High-performance computing resources (GPUs/TPUs)",
			"Specialized software libraries for modeling and analysis",
			"Access to large-scale datasets",
		},
		ResourceNeeds: domain.ResourceNeeds{
			Computational: "Access to cloud computing platforms or local GPU clusters for training and experimentation.",
			Data:          "Availability of relevant benchmark datasets and tools for data preprocessing and augmentation.",
			Personnel: fmt.Sprintf("A multidisciplinary research team with expertise in %s, machine learning, "+
				"data science, and software engineering.", topic),
			Equipment: "Standard office equipment, high-end workstations for development, and access to specialized " +
				"hardware if required for specific experiments.",
		},
		Timeline: domain.Timeline{
			TotalDuration: "24 months",
			Milestones: []domain.Milestone{
				{
					Milestone:       "Completion of theoretical framework and initial algorithm design",
					Timeframe:       "Month 3",
					SuccessCriteria: "Detailed design document and preliminary pseudo-code.",
				},
				{
					Milestone:       "Working prototype of the core framework",
					Timeframe:       "Month 9",
					SuccessCriteria: "Functional code demonstrating key functionalities on small datasets.",
				},
				{
					Milestone:       "Comprehensive experimental results and analysis",
					Timeframe:       "Month 18",
					SuccessCriteria: "Publication-ready performance data and comparative analysis.",
				},
				{
					Milestone:       "Final framework, documentation, and research papers submitted",
					Timeframe:       "Month 24",
					SuccessCriteria: "Complete and well-documented system, with at least one peer-reviewed publication.",
				},
			},
		},
		RiskAssessment: []domain.Risk{
			{
				Risk:        "Technical challenges in algorithm optimization and scalability",
				Probability: "Medium",
				Impact:      "High",
				Mitigation:  "Iterative development with continuous performance profiling and optimization; explore parallel computing techniques.",
			},
			{
				Risk:        "Difficulty in obtaining or processing large-scale, high-quality datasets",
				Probability: "Medium",
				Impact:      "Medium",
				Mitigation:  "Explore data augmentation techniques; collaborate with data providers; develop robust data preprocessing pipelines.",
			},
			{
				Risk:        "Unexpected limitations of the generative models used in the framework",
				Probability: "Low",
				Impact:      "Medium",
				Mitigation:  "Design the framework with modularity to allow alternative models; conduct preliminary tests to assess model suitability.",
			},
		},
	}
}

func impactFor(direction, topic string) domain.Impact {
	return domain.Impact{
		ScientificContribution: fmt.Sprintf("Significant advancement in the %s field with a novel %s approach. "+
			"This research will introduce new theoretical models and practical methodologies, pushing the boundaries "+
			"of current understanding and capabilities in %s.", topic, direction, topic),
		PracticalApplications: []string{
			fmt.Sprintf("Development of more efficient and accurate %s systems for industry", topic),
			"Improved decision-making tools in relevant sectors",
			"Creation of new educational resources and training programs based on the framework",
		},
		SocietalBenefits: []string{
			"Enhanced problem-solving capabilities for complex societal issues (e.g., healthcare, environmental monitoring)",
			"Increased efficiency and resource optimization in various domains",
			"Contribution to the broader scientific community through open-source tools and publications",
		},
		EconomicPotential: fmt.Sprintf("Substantial potential for commercialization and economic impact through new "+
			"product development, process optimization, and job creation in %s-related industries. This research "+
			"could lead to significant cost savings and new market opportunities.", topic),
		FutureResearchDirections: []string{
			fmt.Sprintf("Extension of the framework to new %s sub-domains", topic),
			"Integration with other emerging technologies (e.g., blockchain, IoT)",
			"Longitudinal studies to assess real-world impact and sustainability",
			"Exploration of ethical and societal implications of the developed framework",
		},
	}
}
