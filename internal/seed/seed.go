// ABOUTME: YAML reference-content importer feeding the entity stores
// ABOUTME: Every record passes model validation before it reaches the database
package seed

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/pedbot/nelsonref/internal/models"
	"github.com/pedbot/nelsonref/internal/storage"
)

// File is the top-level shape of a seed document. Sections are optional.
type File struct {
	Drugs        []DrugSpec      `yaml:"drugs"`
	Protocols    []ProtocolSpec  `yaml:"protocols"`
	Milestones   []MilestoneSpec `yaml:"milestones"`
	GrowthCharts []ChartSpec     `yaml:"growth_charts"`
	Symptoms     []SymptomSpec   `yaml:"symptoms"`
	Chapters     []ChapterSpec   `yaml:"chapters"`
}

// Result reports how many records each section imported.
type Result struct {
	BatchID    string
	Drugs      int
	Dosages    int
	Protocols  int
	Milestones int
	Charts     int
	Symptoms   int
	Chapters   int
	Chunks     int
}

// DrugSpec is a drug monograph with its dosing rules. Decimal fields are
// YAML strings so the declared precision survives parsing.
type DrugSpec struct {
	GenericName       string       `yaml:"generic_name"`
	BrandNames        []string     `yaml:"brand_names"`
	DrugClass         string       `yaml:"drug_class"`
	Indications       []string     `yaml:"indications"`
	Contraindications []string     `yaml:"contraindications"`
	Warnings          []string     `yaml:"warnings"`
	MinAgeMonths      *int         `yaml:"min_age_months"`
	MaxAgeMonths      *int         `yaml:"max_age_months"`
	MinWeightKg       string       `yaml:"min_weight_kg"`
	MaxWeightKg       string       `yaml:"max_weight_kg"`
	Dosages           []DosageSpec `yaml:"dosages"`
}

// DosageSpec is one dosing rule under a drug.
type DosageSpec struct {
	Indication             string   `yaml:"indication"`
	Route                  string   `yaml:"route"`
	DoseAmount             string   `yaml:"dose_amount"`
	DoseUnit               string   `yaml:"dose_unit"`
	Frequency              string   `yaml:"frequency"`
	MaxDailyDose           string   `yaml:"max_daily_dose"`
	MaxSingleDose          string   `yaml:"max_single_dose"`
	MinAgeMonths           *int     `yaml:"min_age_months"`
	MaxAgeMonths           *int     `yaml:"max_age_months"`
	MinWeightKg            string   `yaml:"min_weight_kg"`
	MaxWeightKg            string   `yaml:"max_weight_kg"`
	AdministrationNotes    string   `yaml:"administration_notes"`
	MonitoringRequirements []string `yaml:"monitoring_requirements"`
}

// ProtocolSpec is an emergency protocol record.
type ProtocolSpec struct {
	Name              string            `yaml:"name"`
	ProtocolType      string            `yaml:"protocol_type"`
	AgeGroup          string            `yaml:"age_group"`
	Keywords          []string          `yaml:"keywords"`
	Overview          string            `yaml:"overview"`
	Steps             []models.Metadata `yaml:"steps"`
	Medications       []models.Metadata `yaml:"medications"`
	Equipment         []string          `yaml:"equipment"`
	WarningSigns      []string          `yaml:"warning_signs"`
	Contraindications []string          `yaml:"contraindications"`
	WhenToCallHelp    []string          `yaml:"when_to_call_help"`
	PriorityLevel     int               `yaml:"priority_level"`
	SourceReferences  []string          `yaml:"source_references"`
}

// MilestoneSpec is a developmental milestone record.
type MilestoneSpec struct {
	AgeMonths              int      `yaml:"age_months"`
	Domain                 string   `yaml:"domain"`
	MilestoneText          string   `yaml:"milestone_text"`
	Description            string   `yaml:"description"`
	TypicalAgeRangeStart   int      `yaml:"typical_age_range_start"`
	TypicalAgeRangeEnd     int      `yaml:"typical_age_range_end"`
	RedFlagAge             *int     `yaml:"red_flag_age"`
	AssessmentMethod       string   `yaml:"assessment_method"`
	ParentReportAcceptable *bool    `yaml:"parent_report_acceptable"`
	RequiresObservation    bool     `yaml:"requires_observation"`
	SourceReferences       []string `yaml:"source_references"`
	ClinicalNotes          string   `yaml:"clinical_notes"`
}

// ChartSpec is a growth chart with its percentile curves.
type ChartSpec struct {
	ChartType      string                          `yaml:"chart_type"`
	Sex            string                          `yaml:"sex"`
	AgeRangeStart  int                             `yaml:"age_range_start"`
	AgeRangeEnd    int                             `yaml:"age_range_end"`
	PercentileData map[string][]models.GrowthPoint `yaml:"percentile_data"`
	Source         string                          `yaml:"source"`
	Version        string                          `yaml:"version"`
}

// SymptomSpec is a symptom reference record.
type SymptomSpec struct {
	Name                 string   `yaml:"name"`
	Synonyms             []string `yaml:"synonyms"`
	Category             string   `yaml:"category"`
	Description          string   `yaml:"description"`
	CommonAgeGroups      []string `yaml:"common_age_groups"`
	RedFlags             []string `yaml:"red_flags"`
	CommonDiagnoses      []string `yaml:"common_diagnoses"`
	UrgentDiagnoses      []string `yaml:"urgent_diagnoses"`
	AssessmentQuestions  []string `yaml:"assessment_questions"`
	PhysicalExamFindings []string `yaml:"physical_exam_findings"`
}

// ChapterSpec is a textbook chapter with its retrieval chunks.
type ChapterSpec struct {
	ChapterNumber int         `yaml:"chapter_number"`
	Title         string      `yaml:"title"`
	Authors       []string    `yaml:"authors"`
	Edition       string      `yaml:"edition"`
	PageStart     *int        `yaml:"page_start"`
	PageEnd       *int        `yaml:"page_end"`
	Keywords      []string    `yaml:"keywords"`
	Summary       string      `yaml:"summary"`
	Chunks        []ChunkSpec `yaml:"chunks"`
}

// ChunkSpec is one retrieval chunk under a chapter.
type ChunkSpec struct {
	Content         string    `yaml:"content"`
	ChunkIndex      int       `yaml:"chunk_index"`
	TokenCount      int       `yaml:"token_count"`
	Embedding       []float64 `yaml:"embedding"`
	PageNumbers     []int     `yaml:"page_numbers"`
	SectionTitle    string    `yaml:"section_title"`
	SubsectionTitle string    `yaml:"subsection_title"`
}

// LoadFile parses a seed document from disk.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	return &f, nil
}

// Import inserts every record in the file, validating each through its model.
// A section aborts on the first bad record, naming it in the error.
func Import(store *storage.Storage, f *File) (*Result, error) {
	res := &Result{BatchID: uuid.New().String()}

	for i, spec := range f.Drugs {
		drug, dosages, err := spec.toModels()
		if err != nil {
			return res, fmt.Errorf("drug %d (%s): %w", i, spec.GenericName, err)
		}
		if err := store.Drugs.Create(drug); err != nil {
			return res, fmt.Errorf("drug %d (%s): %w", i, spec.GenericName, err)
		}
		res.Drugs++
		for j := range dosages {
			dosages[j].DrugID = drug.ID
			if err := store.Dosages.Create(&dosages[j]); err != nil {
				return res, fmt.Errorf("drug %s dosage %d: %w", spec.GenericName, j, err)
			}
			res.Dosages++
		}
	}

	for i, spec := range f.Protocols {
		p := &models.EmergencyProtocol{
			Name:              spec.Name,
			ProtocolType:      models.EmergencyType(spec.ProtocolType),
			AgeGroup:          spec.AgeGroup,
			Keywords:          spec.Keywords,
			Overview:          spec.Overview,
			Steps:             spec.Steps,
			Medications:       spec.Medications,
			Equipment:         spec.Equipment,
			WarningSigns:      spec.WarningSigns,
			Contraindications: spec.Contraindications,
			WhenToCallHelp:    spec.WhenToCallHelp,
			PriorityLevel:     spec.PriorityLevel,
			SourceReferences:  spec.SourceReferences,
		}
		if err := store.Protocols.Create(p); err != nil {
			return res, fmt.Errorf("protocol %d (%s): %w", i, spec.Name, err)
		}
		res.Protocols++
	}

	for i, spec := range f.Milestones {
		parentReport := true
		if spec.ParentReportAcceptable != nil {
			parentReport = *spec.ParentReportAcceptable
		}
		m := &models.DevelopmentalMilestone{
			AgeMonths:              spec.AgeMonths,
			Domain:                 models.DevelopmentalDomain(spec.Domain),
			MilestoneText:          spec.MilestoneText,
			Description:            spec.Description,
			TypicalAgeRangeStart:   spec.TypicalAgeRangeStart,
			TypicalAgeRangeEnd:     spec.TypicalAgeRangeEnd,
			RedFlagAge:             spec.RedFlagAge,
			AssessmentMethod:       spec.AssessmentMethod,
			ParentReportAcceptable: parentReport,
			RequiresObservation:    spec.RequiresObservation,
			SourceReferences:       spec.SourceReferences,
			ClinicalNotes:          spec.ClinicalNotes,
		}
		if err := store.Milestones.Create(m); err != nil {
			return res, fmt.Errorf("milestone %d (%s): %w", i, spec.MilestoneText, err)
		}
		res.Milestones++
	}

	for i, spec := range f.GrowthCharts {
		g := &models.GrowthChart{
			ChartType:      spec.ChartType,
			Sex:            models.Sex(spec.Sex),
			AgeRangeStart:  spec.AgeRangeStart,
			AgeRangeEnd:    spec.AgeRangeEnd,
			PercentileData: spec.PercentileData,
			Source:         spec.Source,
			Version:        spec.Version,
		}
		if err := store.Charts.Create(g); err != nil {
			return res, fmt.Errorf("growth chart %d (%s): %w", i, spec.ChartType, err)
		}
		res.Charts++
	}

	for i, spec := range f.Symptoms {
		sym := &models.Symptom{
			Name:                 spec.Name,
			Synonyms:             spec.Synonyms,
			Category:             spec.Category,
			Description:          spec.Description,
			CommonAgeGroups:      spec.CommonAgeGroups,
			RedFlags:             spec.RedFlags,
			CommonDiagnoses:      spec.CommonDiagnoses,
			UrgentDiagnoses:      spec.UrgentDiagnoses,
			AssessmentQuestions:  spec.AssessmentQuestions,
			PhysicalExamFindings: spec.PhysicalExamFindings,
		}
		if err := store.Symptoms.Create(sym); err != nil {
			return res, fmt.Errorf("symptom %d (%s): %w", i, spec.Name, err)
		}
		res.Symptoms++
	}

	for i, spec := range f.Chapters {
		ch := &models.NelsonChapter{
			ChapterNumber: spec.ChapterNumber,
			Title:         spec.Title,
			Authors:       spec.Authors,
			Edition:       spec.Edition,
			PageStart:     spec.PageStart,
			PageEnd:       spec.PageEnd,
			Keywords:      spec.Keywords,
			Summary:       spec.Summary,
		}
		if err := store.Chapters.Create(ch); err != nil {
			return res, fmt.Errorf("chapter %d (%s): %w", i, spec.Title, err)
		}
		res.Chapters++
		for j, cs := range spec.Chunks {
			chunk := &models.NelsonChunk{
				ChapterID:       ch.ID,
				Content:         cs.Content,
				ChunkIndex:      cs.ChunkIndex,
				TokenCount:      cs.TokenCount,
				Embedding:       cs.Embedding,
				PageNumbers:     cs.PageNumbers,
				SectionTitle:    cs.SectionTitle,
				SubsectionTitle: cs.SubsectionTitle,
			}
			if err := store.Chunks.Create(chunk); err != nil {
				return res, fmt.Errorf("chapter %s chunk %d: %w", spec.Title, j, err)
			}
			res.Chunks++
		}
	}

	return res, nil
}

func (spec DrugSpec) toModels() (*models.PediatricDrug, []models.DrugDosage, error) {
	minWt, err := optDecimal("min_weight_kg", spec.MinWeightKg)
	if err != nil {
		return nil, nil, err
	}
	maxWt, err := optDecimal("max_weight_kg", spec.MaxWeightKg)
	if err != nil {
		return nil, nil, err
	}

	drug := &models.PediatricDrug{
		GenericName:       spec.GenericName,
		BrandNames:        spec.BrandNames,
		DrugClass:         spec.DrugClass,
		Indications:       spec.Indications,
		Contraindications: spec.Contraindications,
		Warnings:          spec.Warnings,
		MinAgeMonths:      spec.MinAgeMonths,
		MaxAgeMonths:      spec.MaxAgeMonths,
		MinWeightKg:       minWt,
		MaxWeightKg:       maxWt,
	}

	dosages := make([]models.DrugDosage, 0, len(spec.Dosages))
	for _, ds := range spec.Dosages {
		d, err := ds.toModel()
		if err != nil {
			return nil, nil, err
		}
		dosages = append(dosages, *d)
	}
	return drug, dosages, nil
}

func (spec DosageSpec) toModel() (*models.DrugDosage, error) {
	amount, err := decimal.NewFromString(spec.DoseAmount)
	if err != nil {
		return nil, fmt.Errorf("dose_amount %q: %w", spec.DoseAmount, err)
	}
	maxDaily, err := optDecimal("max_daily_dose", spec.MaxDailyDose)
	if err != nil {
		return nil, err
	}
	maxSingle, err := optDecimal("max_single_dose", spec.MaxSingleDose)
	if err != nil {
		return nil, err
	}
	minWt, err := optDecimal("min_weight_kg", spec.MinWeightKg)
	if err != nil {
		return nil, err
	}
	maxWt, err := optDecimal("max_weight_kg", spec.MaxWeightKg)
	if err != nil {
		return nil, err
	}

	return &models.DrugDosage{
		Indication:             spec.Indication,
		Route:                  spec.Route,
		DoseAmount:             amount,
		DoseUnit:               models.DoseUnit(spec.DoseUnit),
		Frequency:              spec.Frequency,
		MaxDailyDose:           maxDaily,
		MaxSingleDose:          maxSingle,
		MinAgeMonths:           spec.MinAgeMonths,
		MaxAgeMonths:           spec.MaxAgeMonths,
		MinWeightKg:            minWt,
		MaxWeightKg:            maxWt,
		AdministrationNotes:    spec.AdministrationNotes,
		MonitoringRequirements: spec.MonitoringRequirements,
	}, nil
}

func optDecimal(field, value string) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", field, value, err)
	}
	return &d, nil
}
