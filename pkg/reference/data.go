package reference

// ghsChapters maps GHS chapter references (Revision 4) to hazard class names.
var ghsChapters = map[string]string{
	"2.1":  "Explosives",
	"2.2":  "Flammable gases",
	"2.3":  "Aerosols",
	"2.4":  "Oxidizing gases",
	"2.5":  "Gases under pressure",
	"2.6":  "Flammable liquids",
	"2.7":  "Flammable solids",
	"2.8":  "Self-reactive substances and mixtures",
	"2.9":  "Pyrophoric liquids",
	"2.10": "Pyrophoric solids",
	"2.11": "Self-heating substances and mixtures",
	"2.12": "Substances and mixtures which, in contact with water, emit flammable gases",
	"2.13": "Oxidizing liquids",
	"2.14": "Oxidizing solids",
	"2.15": "Organic peroxides",
	"2.16": "Corrosive to metals",
	"3.1":  "Acute toxicity",
	"3.2":  "Skin corrosion/irritation",
	"3.3":  "Serious eye damage/irritation",
	"3.4":  "Respiratory or skin sensitization",
	"3.5":  "Germ cell mutagenicity",
	"3.6":  "Carcinogenicity",
	"3.7":  "Reproductive toxicity",
	"3.8":  "Specific target organ toxicity - Single exposure",
	"3.9":  "Specific target organ toxicity - Repeated exposure",
	"3.10": "Aspiration hazard",
	"4.1":  "Hazardous to the aquatic environment",
	"4.2":  "Hazardous to the ozone layer",
}

// hazardStatements maps H-statement codes (Revision 4) to statement text.
// Combined codes such as H302 + H332 are not listed.
var hazardStatements = map[string]string{
	"H200": "Unstable explosive",
	"H201": "Explosive; mass explosion hazard",
	"H202": "Explosive; severe projection hazard",
	"H203": "Explosive; fire, blast or projection hazard",
	"H204": "Fire or projection hazard",
	"H205": "May mass explode in fire",
	"H220": "Extremely flammable gas",
	"H221": "Flammable gas",
	"H222": "Extremely flammable aerosol",
	"H223": "Flammable aerosol",
	"H224": "Extremely flammable liquid and vapour",
	"H225": "Highly flammable liquid and vapour",
	"H226": "Flammable liquid and vapour",
	"H227": "Combustible liquid",
	"H228": "Flammable solid",
	"H229": "Pressurized container: may burst if heated",
	"H230": "May react explosively even in the absence of air",
	"H231": "May react explosively even in the absence of air at elevated pressure and/or temperature",
	"H240": "Heating may cause an explosion",
	"H241": "Heating may cause a fire or explosion",
	"H242": "Heating may cause a fire",
	"H250": "Catches fire spontaneously if exposed to air",
	"H251": "Self-heating; may catch fire",
	"H252": "Self-heating in large quantities; may catch fire",
	"H260": "In contact with water releases flammable gases which may ignite spontaneously",
	"H261": "In contact with water releases flammable gas",
	"H270": "May cause or intensify fire; oxidizer",
	"H271": "May cause fire or explosion; strong oxidizer",
	"H272": "May intensify fire; oxidizer",
	"H280": "Contains gas under pressure; may explode if heated",
	"H281": "Contains refrigerated gas; may cause cryogenic burns or injury",
	"H290": "May be corrosive to metals",
	"H300": "Fatal if swallowed",
	"H301": "Toxic if swallowed",
	"H302": "Harmful if swallowed",
	"H303": "May be harmful if swallowed",
	"H304": "May be fatal if swallowed and enters airways",
	"H305": "May be harmful if swallowed and enters airways",
	"H310": "Fatal in contact with skin",
	"H311": "Toxic in contact with skin",
	"H312": "Harmful in contact with skin",
	"H313": "May be harmful in contact with skin",
	"H314": "Causes severe skin burns and eye damage",
	"H315": "Causes skin irritation",
	"H316": "Causes mild skin irritation",
	"H317": "May cause an allergic skin reaction",
	"H318": "Causes serious eye damage",
	"H319": "Causes serious eye irritation",
	"H320": "Causes eye irritation",
	"H330": "Fatal if inhaled",
	"H331": "Toxic if inhaled",
	"H332": "Harmful if inhaled",
	"H333": "May be harmful if inhaled",
	"H334": "May cause allergy or asthma symptoms or breathing difficulties if inhaled",
	"H335": "May cause respiratory irritation",
	"H336": "May cause drowsiness or dizziness",
	"H340": "May cause genetic defects",
	"H341": "Suspected of causing genetic defects",
	"H350": "May cause cancer",
	"H351": "Suspected of causing cancer",
	"H360": "May damage fertility or the unborn child",
	"H361": "Suspected of damaging fertility or the unborn child",
	"H362": "May cause harm to breast-fed children",
	"H370": "Causes damage to organs",
	"H371": "May cause damage to organs",
	"H372": "Causes damage to organs through prolonged or repeated exposure",
	"H373": "May cause damage to organs through prolonged or repeated exposure",
	"H400": "Very toxic to aquatic life",
	"H401": "Toxic to aquatic life",
	"H402": "Harmful to aquatic life",
	"H410": "Very toxic to aquatic life with long lasting effects",
	"H411": "Toxic to aquatic life with long lasting effects",
	"H412": "Harmful to aquatic life with long lasting effects",
	"H413": "May cause long lasting harmful effects to aquatic life",
	"H420": "Harms public health and the environment by destroying ozone in the upper atmosphere",
}

// hsnoTranslations maps HSNO classification codes to their GHS equivalent.
// A zero Translation marks a code with no GHS counterpart.
var hsnoTranslations = map[string]Translation{
	"1.1":                {Category: "Explosives", Subcategory: "Division 1.1"},
	"1.2":                {Category: "Explosives", Subcategory: "Division 1.2"},
	"1.3":                {Category: "Explosives", Subcategory: "Division 1.3"},
	"1.4":                {Category: "Explosives", Subcategory: "Division 1.4"},
	"1.5":                {Category: "Explosives", Subcategory: "Division 1.5"},
	"1.6":                {Category: "Explosives", Subcategory: "Division 1.6"},
	"2.1.1A":             {Category: "Flammable gases", Subcategory: "Category 1"},
	"2.1.1B":             {Category: "Flammable gases", Subcategory: "Category 2"},
	"2.1.2A":             {Category: "Flammable aerosols", Subcategory: "Category 1"},
	"3.1A":               {Category: "Flammable liquids", Subcategory: "Category 1"},
	"3.1B":               {Category: "Flammable liquids", Subcategory: "Category 2"},
	"3.1C":               {Category: "Flammable liquids", Subcategory: "Category 3"},
	"3.1D":               {Category: "Flammable liquids", Subcategory: "Category 4"},
	"4.1.1A":             {Category: "Flammable solids", Subcategory: "Category 1"},
	"4.1.1B":             {Category: "Flammable solids", Subcategory: "Category 2"},
	"4.1.2A":             {Category: "Self-reactive substances and mixtures", Subcategory: "Type A"},
	"4.1.2B":             {Category: "Self-reactive substances and mixtures", Subcategory: "Type B"},
	"4.1.2C":             {Category: "Self-reactive substances and mixtures", Subcategory: "Type C"},
	"4.1.2D":             {Category: "Self-reactive substances and mixtures", Subcategory: "Type D"},
	"4.1.2E":             {Category: "Self-reactive substances and mixtures", Subcategory: "Type E"},
	"4.1.2F":             {Category: "Self-reactive substances and mixtures", Subcategory: "Type F"},
	"4.1.2G":             {Category: "Self-reactive substances and mixtures", Subcategory: "Type G"},
	// HSNO does not separate pyrophoric liquids from solids.
	"4.2A":               {Category: "Pyrophoric substances", Subcategory: "Category 1"},
	"4.2B":               {Category: "Self-heating substances and mixtures", Subcategory: "Category 1"},
	"4.2C":               {Category: "Self-heating substances and mixtures", Subcategory: "Category 2"},
	"4.3A":               {Category: "Substances and mixtures, which in contact with water, emit flammable gases", Subcategory: "Category 1"},
	"4.3B":               {Category: "Substances and mixtures, which in contact with water, emit flammable gases", Subcategory: "Category 2"},
	"4.3C":               {Category: "Substances and mixtures, which in contact with water, emit flammable gases", Subcategory: "Category 3"},
	// Oxidizing liquids and solids share one HSNO class.
	"5.1.1A":             {Category: "Oxidizing liquids/solids", Subcategory: "Category 1"},
	"5.1.1B":             {Category: "Oxidizing liquids/solids", Subcategory: "Category 2"},
	"5.1.1C":             {Category: "Oxidizing liquids/solids", Subcategory: "Category 3"},
	"5.1.2A":             {Category: "Oxidizing gases", Subcategory: "Category 1"},
	"5.2A":               {Category: "Organic peroxides", Subcategory: "Type A"},
	"5.2B":               {Category: "Organic peroxides", Subcategory: "Type B"},
	"5.2C":               {Category: "Organic peroxides", Subcategory: "Type C"},
	"5.2D":               {Category: "Organic peroxides", Subcategory: "Type D"},
	"5.2E":               {Category: "Organic peroxides", Subcategory: "Type E"},
	"5.2F":               {Category: "Organic peroxides", Subcategory: "Type F"},
	"5.2G":               {Category: "Organic peroxides", Subcategory: "Type G"},
	"6.1A (dermal)":      {Category: "Acute toxicity: Dermal", Subcategory: "Category 1"},
	"6.1A (inhalation)":  {Category: "Acute toxicity: Inhalation", Subcategory: "Category 1"},
	"6.1A (oral)":        {Category: "Acute toxicity: Oral", Subcategory: "Category 1"},
	"6.1B (dermal)":      {Category: "Acute toxicity: Dermal", Subcategory: "Category 2"},
	"6.1B (inhalation)":  {Category: "Acute toxicity: Inhalation", Subcategory: "Category 2"},
	"6.1B (oral)":        {Category: "Acute toxicity: Oral", Subcategory: "Category 2"},
	"6.1C (dermal)":      {Category: "Acute toxicity: Dermal", Subcategory: "Category 3"},
	"6.1C (inhalation)":  {Category: "Acute toxicity: Inhalation", Subcategory: "Category 3"},
	"6.1C (oral)":        {Category: "Acute toxicity: Oral", Subcategory: "Category 3"},
	"6.1D (dermal)":      {Category: "Acute toxicity: Dermal", Subcategory: "Category 4"},
	"6.1D (inhalation)":  {Category: "Acute toxicity: Inhalation", Subcategory: "Category 4"},
	"6.1D (oral)":        {Category: "Acute toxicity: Oral", Subcategory: "Category 4"},
	"6.1E (dermal)":      {Category: "Acute toxicity: Dermal", Subcategory: "Category 5"},
	"6.1E (inhalation)":  {Category: "Acute toxicity: Inhalation", Subcategory: "Category 5"},
	"6.1E (oral)":        {Category: "Acute toxicity: Oral", Subcategory: "Category 5"},
	"6.3A":               {Category: "Skin corrosion/irritation", Subcategory: "Category 2"},
	"6.3B":               {Category: "Skin corrosion/irritation", Subcategory: "Category 3"},
	// 6.4A covers Category 2A and 2B.
	"6.4A":               {Category: "Serious eye damage/eye irritation", Subcategory: "Category 2"},
	"6.5A (respiratory)": {Category: "Respiratory sensitization", Subcategory: "Category 1"},
	"6.5B (contact)":     {Category: "Skin sensitization", Subcategory: "Category 1"},
	// A categories cover 1A and 1B.
	"6.6A":               {Category: "Germ cell mutagenicity", Subcategory: "Category 1"},
	"6.6B":               {Category: "Germ cell mutagenicity", Subcategory: "Category 2"},
	"6.7A":               {Category: "Carcinogenicity", Subcategory: "Category 1"},
	"6.7B":               {Category: "Carcinogenicity", Subcategory: "Category 2"},
	"6.8A":               {Category: "Reproductive toxicity", Subcategory: "Category 1"},
	"6.8B":               {Category: "Reproductive toxicity", Subcategory: "Category 2"},
	"6.8C":               {Category: "Reproductive toxicity", Subcategory: "Effects on or via lactation"},
	// HSNO separates exposure routes but not single vs repeated exposure.
	"6.9A (dermal)":      {Category: "Specific Target Organ Systemic Toxicity", Subcategory: "Category 1"},
	"6.9A (inhalation)":  {Category: "Specific Target Organ Systemic Toxicity", Subcategory: "Category 1"},
	"6.9A (oral)":        {Category: "Specific Target Organ Systemic Toxicity", Subcategory: "Category 1"},
	"6.9A (other)":       {Category: "Specific Target Organ Systemic Toxicity", Subcategory: "Category 1"},
	"6.9B (dermal)":      {Category: "Specific Target Organ Systemic Toxicity", Subcategory: "Category 2"},
	"6.9B (inhalation)":  {Category: "Specific Target Organ Systemic Toxicity", Subcategory: "Category 2"},
	"6.9B (oral)":        {Category: "Specific Target Organ Systemic Toxicity", Subcategory: "Category 2"},
	"6.9B (other)":       {Category: "Specific Target Organ Systemic Toxicity", Subcategory: "Category 2"},
	"8.1A":               {Category: "Corrosive to metals", Subcategory: "Category 1"},
	"8.2A":               {Category: "Skin corrosion/irritation", Subcategory: "Category 1A"},
	"8.2B":               {Category: "Skin corrosion/irritation", Subcategory: "Category 1B"},
	"8.2C":               {Category: "Skin corrosion/irritation", Subcategory: "Category 1C"},
	"8.3A":               {Category: "Serious eye damage/eye irritation", Subcategory: "Category 1"},
	// 9.1A does not separate acute from chronic.
	"9.1A (algal)":       {Category: "Aquatic toxicity (Acute or Chronic)", Subcategory: "Category 1"},
	"9.1A (crustacean)":  {Category: "Aquatic toxicity (Acute or Chronic)", Subcategory: "Category 1"},
	"9.1A (fish)":        {Category: "Aquatic toxicity (Acute or Chronic)", Subcategory: "Category 1"},
	"9.1A (other)":       {Category: "Aquatic toxicity (Acute or Chronic)", Subcategory: "Category 1"},
	"9.1B (algal)":       {Category: "Aquatic toxicity (Chronic)", Subcategory: "Category 2"},
	"9.1B (crustacean)":  {Category: "Aquatic toxicity (Chronic)", Subcategory: "Category 2"},
	"9.1B (fish)":        {Category: "Aquatic toxicity (Chronic)", Subcategory: "Category 2"},
	"9.1B (other)":       {Category: "Aquatic toxicity (Chronic)", Subcategory: "Category 2"},
	"9.1C (algal)":       {Category: "Aquatic toxicity (Chronic)", Subcategory: "Category 3"},
	"9.1C (crustacean)":  {Category: "Aquatic toxicity (Chronic)", Subcategory: "Category 3"},
	"9.1C (fish)":        {Category: "Aquatic toxicity (Chronic)", Subcategory: "Category 3"},
	"9.1C (other)":       {Category: "Aquatic toxicity (Chronic)", Subcategory: "Category 3"},
	// 9.1D has no clean GHS equivalent.
	"9.1D (algal)":       {Category: "Aquatic toxicity", Subcategory: "Category 2-3 (Acute) or Category 4 (Chronic)"},
	"9.1D (crustacean)":  {Category: "Aquatic toxicity", Subcategory: "Category 2-3 (Acute) or Category 4 (Chronic)"},
	"9.1D (fish)":        {Category: "Aquatic toxicity", Subcategory: "Category 2-3 (Acute) or Category 4 (Chronic)"},
	"9.1D (other)":       {Category: "Aquatic toxicity", Subcategory: "Category 2-3 (Acute) or Category 4 (Chronic)"},
	// Not translatable.
	"3.2A":               {},
	"3.2B":               {},
	"3.2C":               {},
	"4.1.3A":             {},
	"4.1.3B":             {},
	"4.1.3C":             {},
	"9.2A":               {},
	"9.2B":               {},
	"9.2C":               {},
	"9.2D":               {},
	"9.3A":               {},
	"9.3B":               {},
	"9.3C":               {},
	"9.4A":               {},
	"9.4B":               {},
	"9.4C":               {},
}
