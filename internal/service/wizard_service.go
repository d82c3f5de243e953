package service

import (
	"context"

	"github.com/google/uuid"

	"pukaist/internal/domain"
	"pukaist/internal/port"
)

// WizardFieldsPatch carries partial updates to the case-creation wizard; nil
// fields are merged over the existing snapshot, never replacing it wholesale.
type WizardFieldsPatch struct {
	CaseName           *string `json:"case_name,omitempty"`
	CaseType           *string `json:"case_type,omitempty"`
	Claimant           *string `json:"claimant,omitempty"`
	Defendant          *string `json:"defendant,omitempty"`
	FileNumber         *string `json:"file_number,omitempty"`
	Court              *string `json:"court,omitempty"`
	Jurisdiction       *string `json:"jurisdiction,omitempty"`
	StartYear          *string `json:"start_year,omitempty"`
	EndYear            *string `json:"end_year,omitempty"`
	MissionFocus       *string `json:"mission_focus,omitempty"`
	RequirementsNotes  *string `json:"requirements_notes,omitempty"`
	ContactEmail       *string `json:"contact_email,omitempty"`
	Theme              *string `json:"theme,omitempty"`
	ThemeLandReduction *bool   `json:"theme_land_reduction,omitempty"`
	ThemeTrespass      *bool   `json:"theme_trespass,omitempty"`
	ThemeWaterRights   *bool   `json:"theme_water_rights,omitempty"`
	ThemeTimberHarvest *bool   `json:"theme_timber_harvest,omitempty"`
	ThemeFisheries     *bool   `json:"theme_fisheries,omitempty"`
	ThemeRoads         *bool   `json:"theme_roads,omitempty"`
	Open               *bool   `json:"open,omitempty"`
}

// WizardService manages the persisted case-creation wizard snapshot. Fields
// survive across wizard sessions by design; Save closes the wizard without
// clearing them.
type WizardService interface {
	Get(ctx context.Context, userID uuid.UUID) domain.WizardFields
	Update(ctx context.Context, userID uuid.UUID, patch WizardFieldsPatch) domain.WizardFields
	Save(ctx context.Context, userID uuid.UUID) domain.WizardFields
	Reset(ctx context.Context, userID uuid.UUID) domain.WizardFields
}

type wizardService struct {
	kv port.KeyValueStore
}

// NewWizardService creates a new WizardService implementation.
func NewWizardService(kv port.KeyValueStore) WizardService {
	return &wizardService{kv: kv}
}

func wizardKey(userID uuid.UUID) string {
	return "pukaist:wizard-fields:" + userID.String()
}

func (s *wizardService) Get(ctx context.Context, userID uuid.UUID) domain.WizardFields {
	fields := domain.DefaultWizardFields()
	readState(ctx, s.kv, wizardKey(userID), &fields)
	return fields
}

func (s *wizardService) Update(ctx context.Context, userID uuid.UUID, patch WizardFieldsPatch) domain.WizardFields {
	fields := s.Get(ctx, userID)
	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	applyString(&fields.CaseName, patch.CaseName)
	applyString(&fields.CaseType, patch.CaseType)
	applyString(&fields.Claimant, patch.Claimant)
	applyString(&fields.Defendant, patch.Defendant)
	applyString(&fields.FileNumber, patch.FileNumber)
	applyString(&fields.Court, patch.Court)
	applyString(&fields.Jurisdiction, patch.Jurisdiction)
	applyString(&fields.StartYear, patch.StartYear)
	applyString(&fields.EndYear, patch.EndYear)
	applyString(&fields.MissionFocus, patch.MissionFocus)
	applyString(&fields.RequirementsNotes, patch.RequirementsNotes)
	applyString(&fields.ContactEmail, patch.ContactEmail)
	applyString(&fields.Theme, patch.Theme)
	applyBool(&fields.ThemeLandReduction, patch.ThemeLandReduction)
	applyBool(&fields.ThemeTrespass, patch.ThemeTrespass)
	applyBool(&fields.ThemeWaterRights, patch.ThemeWaterRights)
	applyBool(&fields.ThemeTimberHarvest, patch.ThemeTimberHarvest)
	applyBool(&fields.ThemeFisheries, patch.ThemeFisheries)
	applyBool(&fields.ThemeRoads, patch.ThemeRoads)
	applyBool(&fields.Open, patch.Open)
	writeState(ctx, s.kv, wizardKey(userID), fields)
	return fields
}

// Save closes the wizard; all entered fields are kept for the next session.
func (s *wizardService) Save(ctx context.Context, userID uuid.UUID) domain.WizardFields {
	fields := s.Get(ctx, userID)
	fields.Open = false
	writeState(ctx, s.kv, wizardKey(userID), fields)
	return fields
}

func (s *wizardService) Reset(ctx context.Context, userID uuid.UUID) domain.WizardFields {
	fields := domain.DefaultWizardFields()
	writeState(ctx, s.kv, wizardKey(userID), fields)
	return fields
}
