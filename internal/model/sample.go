package model

// SampleWorksheet returns a fully populated worksheet for a bead-board
// wainscot painting SOP. Useful as a starting point and as a demonstration of
// the factor and multi-method features.
func SampleWorksheet() *Worksheet {
	w := NewWorksheet("New Construction Interior - Wainscot - Bead-Board Painting")
	w.SOPDescription = "This specification covers the painting of factory primed bead-board wainscote."

	factors := []*GlobalFactor{
		{ID: "F01", Name: "Deep/Complex Bead Pattern", MultiplierRange: "0.75-0.85"},
		{ID: "F02", Name: "Shallow/Simple Bead Pattern", MultiplierRange: "1.1-1.2"},
		{ID: "F03", Name: "Poor Factory Primer Condition", MultiplierRange: "0.7-0.8"},
		{ID: "F04", Name: "Excellent Factory Primer Condition", MultiplierRange: "1.1-1.2"},
		{ID: "F05", Name: "High Detail Areas (>1 per 50 SF)", MultiplierRange: "0.8-0.9"},
		{ID: "F06", Name: "Seamless Runs (>50 LF)", MultiplierRange: "1.1-1.2"},
		{ID: "F07", Name: "Working Height >7 ft", MultiplierRange: "0.8-0.9"},
		{ID: "F08", Name: "Restricted Access", MultiplierRange: "0.7-0.8"},
		{ID: "F09", Name: "Dark Color (Extra Coat Possible)", MultiplierRange: "0.85-0.9"},
		{ID: "F10", Name: "High-Gloss Finish", MultiplierRange: "0.8-0.85"},
	}
	w.GlobalFactors = factors

	w.Tasks = []*Task{
		{
			ID: "T001", Name: "Surface Inspection", IsSelected: true,
			Methods:           []Method{{Name: "Visual and tactile inspection", Rate: 550, IsSelected: true}},
			SkillLevel:        "Medium",
			MaterialsRequired: "Bright flashlight, Moisture meter",
			FactorsAffecting:  "Surface condition, Lighting conditions",
			Description:       "Thoroughly examine the factory primed wainscote.",
		},
		{
			ID: "T002", Name: "Surface Cleaning", IsSelected: true,
			Methods: []Method{
				{Name: "Hand wiping", Rate: 275, IsSelected: true},
				{Name: "Vacuuming", Rate: 325, IsSelected: false},
			},
			SkillLevel:        "Low",
			MaterialsRequired: "Tack cloth, Vacuum w/ brush, TSP substitute",
			FactorsAffecting:  "Dust level, Site cleanliness",
			Description:       "Remove all dust, dirt, and contaminants.",
		},
		{
			ID: "T003", Name: "Nail Hole Filling/Spackling", IsSelected: true,
			Methods:           []Method{{Name: "Knife/Finger application", Rate: 200, IsSelected: true}},
			SkillLevel:        "Medium",
			MaterialsRequired: "Lightweight spackling, Putty knife",
			FactorsAffecting:  "Number of holes, Depth",
			Description:       "Fill all nail holes, dents and imperfections.",
		},
		{
			ID: "T004", Name: "Caulking Seams & Transitions", IsSelected: true,
			Methods:           []Method{{Name: "Gun application, tool w/ finger", Rate: 175, IsSelected: true}},
			SkillLevel:        "Medium",
			MaterialsRequired: "Paintable acrylic caulk, Caulk gun",
			FactorsAffecting:  "Number of seams, Gap width",
			Description:       "Apply paintable acrylic caulk to all seams and transitions.",
		},
		{
			ID: "T005", Name: "Sanding Preparation", IsSelected: true,
			Methods:           []Method{{Name: "Hand/Sponge sanding", Rate: 225, IsSelected: true}},
			SkillLevel:        "Medium",
			MaterialsRequired: "220-grit sandpaper, Sanding sponge",
			FactorsAffecting:  "Primer condition, Detail complexity",
			Description:       "Lightly sand entire surface.",
		},
		{
			ID: "T006", Name: "Spot Priming (as needed)", IsSelected: true,
			Methods:           []Method{{Name: "Brush/Roll application", Rate: 250, IsSelected: true}},
			SkillLevel:        "Medium",
			MaterialsRequired: "Acrylic primer, Brush, Mini-roller",
			FactorsAffecting:  "Area requiring priming, Primer quality",
			Description:       "Apply primer to all spackled areas.",
		},
		{
			ID: "T007", Name: "First Coat Application", IsSelected: true,
			Methods: []Method{
				{Name: "Brush/Roll", Rate: 200, IsSelected: true},
				{Name: "Spray+Backbrush", Rate: 350, IsSelected: false},
			},
			SkillLevel:        "Medium-High",
			MaterialsRequired: "Premium latex paint, Brushes, Rollers",
			FactorsAffecting:  "Groove complexity, Paint viscosity",
			Description:       "Apply first coat of finish paint.",
		},
		{
			ID: "T008", Name: "Light Sanding Between Coats", IsSelected: true,
			Methods:           []Method{{Name: "Hand/Sponge sanding", Rate: 325, IsSelected: true}},
			SkillLevel:        "Medium",
			MaterialsRequired: "320-grit sandpaper, Sanding sponge",
			FactorsAffecting:  "First coat smoothness, Env. conditions",
			Description:       "Once first coat is dry, lightly sand the surface.",
		},
		{
			ID: "T009", Name: "Final Coat Application", IsSelected: true,
			Methods: []Method{
				{Name: "Brush/Roll", Rate: 225, IsSelected: true},
				{Name: "Spray+Backbrush", Rate: 375, IsSelected: false},
			},
			SkillLevel:        "Medium-High",
			MaterialsRequired: "Premium latex paint, Brushes, Rollers",
			FactorsAffecting:  "Groove complexity, Coverage needs",
			Description:       "Apply final coat using same technique.",
		},
		{
			ID: "T010", Name: "Post-Finish Inspection", IsSelected: true,
			Methods:           []Method{{Name: "Visual inspection", Rate: 475, IsSelected: true}},
			SkillLevel:        "High",
			MaterialsRequired: "Bright movable lighting",
			FactorsAffecting:  "Lighting conditions, Quality standards",
			Description:       "After final coat has dried, inspect the surface.",
		},
		{
			ID: "T011", Name: "Final Touch-Up", IsSelected: true,
			Methods: []Method{
				{Name: "Spot application", Rate: 350, IsSelected: true},
				{Name: "Feathering", Rate: 300, IsSelected: false},
			},
			SkillLevel:        "High",
			MaterialsRequired: "Touch-up kit, Artist brushes",
			FactorsAffecting:  "Number of defects, Visibility",
			Description:       "Address all identified defects.",
		},
		{
			ID: "OPT01", Name: "Heavy Duty Cleaning", IsSelected: false,
			Methods: []Method{
				{Name: "Scrubbing", Rate: 175, IsSelected: true},
				{Name: "Rinsing", Rate: 225, IsSelected: false},
			},
			SkillLevel:        "Low",
			MaterialsRequired: "Degreaser, Brushes, Water",
			FactorsAffecting:  "Level of contamination",
			Description:       "Extensive cleaning for heavily soiled surfaces.",
		},
		{
			ID: "OPT02", Name: "Full Surface Priming", IsSelected: false,
			Methods:           []Method{{Name: "Brush/Roll application", Rate: 175, IsSelected: true}},
			SkillLevel:        "Medium",
			MaterialsRequired: "Primer, Brushes, Rollers",
			FactorsAffecting:  "Surface porosity, Stains",
			Description:       "Apply primer to the entire surface.",
		},
		{
			ID: "OPT03", Name: "Extensive Masking", IsSelected: false,
			Methods:           []Method{{Name: "Manual application", Rate: 125, IsSelected: true}},
			SkillLevel:        "Medium",
			MaterialsRequired: "Tape, Plastic/Paper sheeting",
			FactorsAffecting:  "Complexity of areas to protect",
			Description:       "Detailed masking of adjacent surfaces.",
		},
	}

	w.Normalize()
	return w
}
