package catalog

// SalaryBand holds monthly gross salary percentiles in BRL.
type SalaryBand struct {
	Position string `json:"position"`
	Level    string `json:"level"`
	Industry string `json:"industry"`
	City     string `json:"city"`
	P25      int    `json:"p25"`
	P50      int    `json:"p50"`
	P75      int    `json:"p75"`
	P90      int    `json:"p90"`
}

var SalaryTable = []SalaryBand{
	{Position: "frontend developer", Level: "junior", Industry: "software", City: "São Paulo", P25: 4000, P50: 5000, P75: 6200, P90: 7500},
	{Position: "frontend developer", Level: "mid", Industry: "software", City: "São Paulo", P25: 7500, P50: 9000, P75: 11000, P90: 13000},
	{Position: "frontend developer", Level: "senior", Industry: "software", City: "São Paulo", P25: 12000, P50: 14500, P75: 17000, P90: 20000},
	{Position: "frontend developer", Level: "senior", Industry: "fintech", City: "São Paulo", P25: 13500, P50: 16000, P75: 19000, P90: 23000},
	{Position: "backend developer", Level: "junior", Industry: "software", City: "São Paulo", P25: 4500, P50: 5500, P75: 6800, P90: 8000},
	{Position: "backend developer", Level: "mid", Industry: "software", City: "São Paulo", P25: 8000, P50: 10000, P75: 12000, P90: 14000},
	{Position: "backend developer", Level: "mid", Industry: "fintech", City: "São Paulo", P25: 9000, P50: 11000, P75: 13500, P90: 16000},
	{Position: "backend developer", Level: "senior", Industry: "software", City: "São Paulo", P25: 13000, P50: 15500, P75: 18500, P90: 22000},
	{Position: "backend developer", Level: "senior", Industry: "fintech", City: "Rio de Janeiro", P25: 13000, P50: 15000, P75: 18000, P90: 21000},
	{Position: "fullstack developer", Level: "junior", Industry: "software", City: "Campinas", P25: 3800, P50: 4800, P75: 5800, P90: 7000},
	{Position: "fullstack developer", Level: "mid", Industry: "software", City: "São Paulo", P25: 8000, P50: 9800, P75: 11800, P90: 13500},
	{Position: "fullstack developer", Level: "senior", Industry: "software", City: "São Paulo", P25: 12500, P50: 15000, P75: 17500, P90: 21000},
	{Position: "data analyst", Level: "junior", Industry: "consumer goods", City: "São Paulo", P25: 3500, P50: 4300, P75: 5200, P90: 6200},
	{Position: "data analyst", Level: "mid", Industry: "consumer goods", City: "São Paulo", P25: 6500, P50: 8000, P75: 9500, P90: 11000},
	{Position: "data analyst", Level: "mid", Industry: "banking", City: "São Paulo", P25: 7000, P50: 8500, P75: 10000, P90: 12000},
	{Position: "data analyst", Level: "senior", Industry: "banking", City: "São Paulo", P25: 10000, P50: 12000, P75: 14000, P90: 16500},
	{Position: "product designer", Level: "mid", Industry: "software", City: "São Paulo", P25: 7000, P50: 8500, P75: 10000, P90: 12000},
	{Position: "product designer", Level: "senior", Industry: "software", City: "São Paulo", P25: 11000, P50: 13000, P75: 15500, P90: 18000},
	{Position: "devops engineer", Level: "mid", Industry: "software", City: "São Paulo", P25: 9000, P50: 11000, P75: 13000, P90: 15000},
	{Position: "devops engineer", Level: "senior", Industry: "software", City: "São Paulo", P25: 14000, P50: 16500, P75: 19500, P90: 23000},
	{Position: "devops engineer", Level: "senior", Industry: "fintech", City: "Rio de Janeiro", P25: 14000, P50: 16000, P75: 19000, P90: 22500},
	{Position: "product manager", Level: "mid", Industry: "marketplace", City: "Osasco", P25: 10000, P50: 12000, P75: 14500, P90: 17000},
	{Position: "product manager", Level: "senior", Industry: "marketplace", City: "Osasco", P25: 15000, P50: 18000, P75: 21000, P90: 25000},
	{Position: "engineering manager", Level: "lead", Industry: "software", City: "São Paulo", P25: 20000, P50: 24000, P75: 28000, P90: 33000},
	{Position: "engineering manager", Level: "lead", Industry: "fintech", City: "São Paulo", P25: 22000, P50: 26000, P75: 31000, P90: 36000},
}

// RegionalAdjustments scales São Paulo based salaries to other cities.
// Cities without an entry use a factor of 1.
var RegionalAdjustments = map[string]float64{
	"são paulo":      1.00,
	"osasco":         0.98,
	"rio de janeiro": 0.95,
	"campinas":       0.92,
	"cajamar":        0.90,
	"curitiba":       0.88,
	"belo horizonte": 0.85,
	"porto alegre":   0.85,
	"florianópolis":  0.87,
	"recife":         0.78,
	"remote":         0.93,
}
