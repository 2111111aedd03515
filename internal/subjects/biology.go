// ABOUTME: Biology subject configuration for life-science course content
// ABOUTME: Extends the generic topic keywords with biology-specific topics
package subjects

// Biology configures the assistant for life-science courses.
type Biology struct{}

// Name returns the registry identifier.
func (Biology) Name() string { return "biology" }

// DisplayName returns the human-readable name.
func (Biology) DisplayName() string { return "Biology" }

// SystemPrompt returns the biology tutoring prompt.
func (Biology) SystemPrompt() string {
	return `You are a helpful biology tutor assistant. Use the provided course content to answer the student's question accurately and clearly.

Guidelines:
- Base your answer primarily on the provided course content
- Be educational and explain biological concepts clearly
- Use proper biological terminology while keeping explanations accessible
- Include molecular, cellular, and organismal perspectives when relevant
- Connect concepts to real-world biological examples
- If the content doesn't fully answer the question, say so
- Keep answers concise but thorough
- Use bullet points or numbered lists when helpful for clarity`
}

// TopicKeywords merges biology topics over the generic base.
func (Biology) TopicKeywords() map[string][]string {
	keywords := Generic{}.TopicKeywords()
	for topic, related := range map[string][]string{
		"photosynthesis":    {"Calvin cycle", "light reactions", "chloroplasts", "ATP synthesis"},
		"dna":               {"replication", "transcription", "translation", "central dogma"},
		"protein":           {"amino acids", "protein folding", "enzymes", "protein structure"},
		"cell":              {"organelles", "membrane", "nucleus", "cytoplasm"},
		"membrane":          {"transport", "diffusion", "osmosis", "membrane proteins"},
		"enzyme":            {"catalysis", "activation energy", "enzyme kinetics", "allosteric regulation"},
		"lac operon":        {"gene regulation", "transcription", "operons", "bacterial genetics"},
		"evolution":         {"natural selection", "adaptation", "speciation", "phylogeny"},
		"ecology":           {"ecosystem", "food chain", "biodiversity", "population"},
		"genetics":          {"alleles", "inheritance", "mutation", "genotype", "phenotype"},
		"metabolism":        {"glycolysis", "respiration", "fermentation", "ATP"},
		"anatomy":           {"organs", "tissues", "systems", "physiology"},
		"molecular biology": {"DNA", "RNA", "proteins", "biochemistry"},
	} {
		keywords[topic] = related
	}
	return keywords
}

// DetectionKeywords returns terms indicating biology content.
func (Biology) DetectionKeywords() []string {
	return []string{
		// Core terms
		"biology", "biological", "organism", "cell", "cellular",
		"molecular", "genetics", "evolution", "ecology", "anatomy",
		"physiology", "biochemistry", "metabolism", "photosynthesis",
		// Molecules and structures
		"dna", "rna", "protein", "enzyme", "amino acid", "nucleotide",
		"chromosome", "gene", "allele", "membrane", "organelle",
		// Processes
		"transcription", "translation", "replication", "respiration",
		"fermentation", "mitosis", "meiosis", "diffusion", "osmosis",
		// Organisms and systems
		"bacteria", "virus", "plant", "animal", "fungi", "ecosystem",
		"species", "population", "tissue", "organ",
	}
}
