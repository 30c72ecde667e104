// Package knowledge provides the curated topic database used as the
// first evidence source during claim verification.
package knowledge

import (
	"fmt"
	"os"
	"strings"

	"github.com/debatesphere/claimcheck/internal/models"
	"gopkg.in/yaml.v3"
)

// Entry holds the curated facts, sources and counter-arguments for one topic.
type Entry struct {
	Topic            string             `yaml:"topic"`
	Facts            []string           `yaml:"facts"`
	Sources          []models.SourceRef `yaml:"sources"`
	CounterArguments []string           `yaml:"counter_arguments"`
}

// Base is an ordered, read-only collection of entries. Entry order is
// significant: the first topic whose name appears in a claim wins.
type Base struct {
	entries []Entry
}

type baseFile struct {
	Topics []Entry `yaml:"topics"`
}

// New creates a base from the given entries, preserving their order.
func New(entries []Entry) *Base {
	return &Base{entries: entries}
}

// Load reads a knowledge base from a YAML file.
func Load(path string) (*Base, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge base: %w", err)
	}

	var f baseFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge base: %w", err)
	}

	for i, e := range f.Topics {
		if strings.TrimSpace(e.Topic) == "" {
			return nil, fmt.Errorf("knowledge base entry %d has an empty topic", i)
		}
	}

	return &Base{entries: f.Topics}, nil
}

// Match returns the first entry whose topic name appears, case-insensitively,
// inside the claim text. Returns nil when no topic matches.
func (b *Base) Match(claim string) *Entry {
	claimLower := strings.ToLower(claim)
	for i := range b.entries {
		if strings.Contains(claimLower, strings.ToLower(b.entries[i].Topic)) {
			return &b.entries[i]
		}
	}
	return nil
}

// Len returns the number of entries.
func (b *Base) Len() int {
	return len(b.entries)
}

// Default returns the built-in knowledge base.
func Default() *Base {
	return New([]Entry{
		{
			Topic: "burj khalifa",
			Facts: []string{
				"The Burj Khalifa is the tallest building in the world, standing at 828 meters (2,717 feet).",
				"The Burj Khalifa is located in Dubai, United Arab Emirates.",
				"The Burj Khalifa was completed in 2010.",
				"The Burj Khalifa has 163 floors.",
				"The Burj Khalifa is not the second largest building in the world, but rather the tallest.",
			},
			Sources: []models.SourceRef{
				{Title: "Burj Khalifa - Official Website", URL: "https://www.burjkhalifa.ae/en/", Kind: models.SourceOfficial},
			},
			CounterArguments: []string{
				"The Burj Khalifa is the tallest building in the world, not the second largest.",
				"The second tallest building in the world is the Shanghai Tower in China, which is 632 meters tall.",
			},
		},
		{
			Topic: "mahatma gandhi",
			Facts: []string{
				"Mahatma Gandhi was born on October 2, 1869, in Porbandar, India.",
				"Gandhi led India's independence movement against British rule through non-violent civil disobedience.",
				"He was assassinated on January 30, 1948, by Nathuram Godse.",
				"Gandhi is known as the 'Father of the Nation' in India.",
				"He was awarded the title 'Mahatma' by Rabindranath Tagore.",
			},
			Sources: []models.SourceRef{
				{Title: "Official Gandhi Heritage Portal", URL: "https://www.gandhiheritageportal.org/", Kind: models.SourceOfficial},
			},
			CounterArguments: []string{
				"While Gandhi is widely respected, some historians argue about his role in certain political decisions.",
				"There are debates about his views on certain social issues of his time.",
			},
		},
		{
			Topic: "nelson mandela",
			Facts: []string{
				"Nelson Mandela was the first black President of South Africa, serving from 1994 to 1999.",
				"He spent 27 years in prison for his anti-apartheid activism.",
				"Mandela was awarded the Nobel Peace Prize in 1993.",
				"He was born on July 18, 1918, and died on December 5, 2013.",
				"Mandela's birth name was Rolihlahla Mandela.",
			},
			Sources: []models.SourceRef{
				{Title: "Nelson Mandela Foundation", URL: "https://www.nelsonmandela.org/", Kind: models.SourceOfficial},
			},
			CounterArguments: []string{
				"Some critics argue about his early association with the armed wing of the ANC.",
				"There are debates about his economic policies during his presidency.",
			},
		},
		{
			Topic: "climate change",
			Facts: []string{
				"Global temperatures have risen by approximately 1.1°C since pre-industrial times.",
				"The Earth's climate is changing faster than at any point in modern civilization.",
				"Human activities are the primary driver of recent climate change.",
				"The concentration of CO2 in the atmosphere is higher than at any time in at least 800,000 years.",
				"Sea levels have risen by about 8 inches since 1900.",
			},
			Sources: []models.SourceRef{
				{Title: "NASA Climate Change", URL: "https://climate.nasa.gov/", Kind: models.SourceScientific},
				{Title: "IPCC Reports", URL: "https://www.ipcc.ch/", Kind: models.SourceScientific},
			},
			CounterArguments: []string{
				"Some argue that climate change is a natural cycle, but scientific evidence shows human influence.",
				"While there is debate about solutions, the basic science of climate change is well-established.",
			},
		},
		{
			Topic: "covid-19",
			Facts: []string{
				"COVID-19 was first identified in Wuhan, China, in December 2019.",
				"The World Health Organization declared it a pandemic on March 11, 2020.",
				"The virus is caused by the SARS-CoV-2 coronavirus.",
				"Vaccines were developed and authorized for emergency use in late 2020.",
				"The virus has caused millions of deaths worldwide.",
			},
			Sources: []models.SourceRef{
				{Title: "World Health Organization COVID-19 Dashboard", URL: "https://covid19.who.int/", Kind: models.SourceOfficial},
			},
			CounterArguments: []string{
				"While there are legitimate debates about response measures, the virus itself is real and dangerous.",
				"Vaccine effectiveness and safety have been extensively studied and verified.",
			},
		},
		{
			Topic: "albert einstein",
			Facts: []string{
				"Albert Einstein developed the theory of relativity, one of the two pillars of modern physics.",
				"He won the Nobel Prize in Physics in 1921 for his explanation of the photoelectric effect.",
				"Einstein was born in Germany in 1879 and died in the United States in 1955.",
				"His famous equation E=mc² describes the relationship between mass and energy.",
				"He made significant contributions to quantum mechanics and statistical mechanics.",
			},
			Sources: []models.SourceRef{
				{Title: "Nobel Prize Organization", URL: "https://www.nobelprize.org/prizes/physics/1921/einstein/facts/", Kind: models.SourceOfficial},
			},
			CounterArguments: []string{
				"While Einstein's theories are fundamental to modern physics, some aspects remain theoretical.",
				"There are ongoing debates about the interpretation of quantum mechanics.",
			},
		},
	})
}
