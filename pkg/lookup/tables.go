package lookup

// nationality ids as used in entry lists
var countryByNationality = map[int]string{
	0: "Other",
	1: "Italy",
	2: "Germany",
	3: "France",
	4: "Spain",
	5: "Great Britain",
	6: "Hungary",
	7: "Belgium",
	8: "Switzerland",
	9: "Austria",
	10: "Russia",
	11: "Thailand",
	12: "Netherlands",
	13: "Poland",
	14: "Argentina",
	15: "Monaco",
	16: "Ireland",
	17: "Brazil",
	18: "South Africa",
	19: "Puerto Rico",
	20: "Slovakia",
	21: "Oman",
	22: "Greece",
	23: "Saudi Arabia",
	24: "Norway",
	25: "Turkey",
	26: "South Korea",
	27: "Lebanon",
	28: "Armenia",
	29: "Mexico",
	30: "Sweden",
	31: "Finland",
	32: "Denmark",
	33: "Croatia",
	34: "Canada",
	35: "China",
	36: "Portugal",
	37: "Singapore",
	38: "Indonesia",
	39: "USA",
	40: "New Zealand",
	41: "Australia",
	42: "San Marino",
	43: "United Arab Emirates",
	44: "Luxembourg",
	45: "Kuwait",
	46: "Hong Kong",
	47: "Colombia",
	48: "Japan",
	49: "Andorra",
	50: "Azerbaijan",
	51: "Bulgaria",
	52: "Cuba",
	53: "Czech Republic",
	54: "Estonia",
	55: "Georgia",
	56: "India",
	57: "Israel",
	58: "Jamaica",
	59: "Latvia",
	60: "Lithuania",
	61: "Macao",
	62: "Malaysia",
	63: "Nepal",
	64: "New Caledonia",
	65: "Nigeria",
	66: "Northern Ireland",
	67: "Papua New Guinea",
	68: "Philippines",
	69: "Qatar",
	70: "Romania",
	71: "Scotland",
	72: "Serbia",
	73: "Slovenia",
	74: "Taiwan",
	75: "Ukraine",
	76: "Venezuela",
	77: "Wales",
	78: "Iran",
	79: "Bahrain",
	80: "Zimbabwe",
	81: "Chinese Taipei",
	82: "Chile",
	83: "Uruguay",
	84: "Madagascar",
	85: "Malta",
	86: "England",
}

var isoByNationality = map[int]string{
	0: "xx",
	1: "it",
	2: "de",
	3: "fr",
	4: "es",
	5: "gb",
	6: "hu",
	7: "be",
	8: "ch",
	9: "at",
	10: "ru",
	11: "th",
	12: "nl",
	13: "pl",
	14: "ar",
	15: "mc",
	16: "ie",
	17: "br",
	18: "za",
	19: "pr",
	20: "sk",
	21: "om",
	22: "gr",
	23: "sa",
	24: "no",
	25: "tr",
	26: "kr",
	27: "lb",
	28: "am",
	29: "mx",
	30: "se",
	31: "fi",
	32: "dk",
	33: "hr",
	34: "ca",
	35: "cn",
	36: "pt",
	37: "sg",
	38: "id",
	39: "us",
	40: "nz",
	41: "au",
	42: "sm",
	43: "ae",
	44: "lu",
	45: "kw",
	46: "hk",
	47: "co",
	48: "jp",
	49: "ad",
	50: "az",
	51: "bg",
	52: "cu",
	53: "cz",
	54: "ee",
	55: "ge",
	56: "in",
	57: "il",
	58: "jm",
	59: "lv",
	60: "lt",
	61: "mo",
	62: "my",
	63: "np",
	64: "nc",
	65: "ng",
	66: "gb-nir",
	67: "pg",
	68: "ph",
	69: "qa",
	70: "ro",
	71: "gb-sct",
	72: "rs",
	73: "si",
	74: "tw",
	75: "ua",
	76: "ve",
	77: "gb-wls",
	78: "ir",
	79: "bh",
	80: "zw",
	81: "tw",
	82: "cl",
	83: "uy",
	84: "mg",
	85: "mt",
	86: "gb-eng",
}

var carModels = map[int]string{
	0: "Porsche 991 GT3 R",
	1: "Mercedes-AMG GT3",
	2: "Ferrari 488 GT3",
	3: "Audi R8 LMS",
	4: "Lamborghini Huracán GT3",
	5: "McLaren 650S GT3",
	6: "Nissan GT-R Nismo GT3",
	7: "BMW M6 GT3",
	8: "Bentley Continental GT3",
	9: "Porsche 991 II GT3 Cup",
	10: "Nissan GT-R Nismo GT3",
	11: "Bentley Continental GT3",
	12: "AMR V12 Vantage GT3",
	13: "Reiter Engineering R-EX GT3",
	14: "Emil Frey Jaguar G3",
	15: "Lexus RC F GT3",
	16: "Lamborghini Huracan GT3 Evo",
	17: "Honda NSX GT3",
	18: "Lamborghini Huracan SuperTrofeo",
	19: "Audi R8 LMS Evo",
	20: "AMR V8 Vantage",
	21: "Honda NSX GT3 Evo",
	22: "McLaren 720S GT3",
	23: "Porsche 991 II GT3 R",
	24: "Ferrari 488 GT3 Evo",
	25: "Mercedes-AMG GT3",
	26: "Ferrari 488 Challenge Evo",
	27: "BMW M2 Club Sport Racing",
	28: "Porsche 992 GT3 Cup",
	29: "Lamborghini Huracán SuperTrofeo EVO2",
	30: "BMW M4 GT3",
	31: "Audi R8 LMS GT3 Evo 2",
	32: "Ferrari 296 GT3",
	33: "Lamborghini Huracan GT3 Evo 2",
	34: "Porsche 992 GT3 R",
	35: "McLaren 720S GT3 Evo",
	50: "Alpine A110 GT4",
	51: "Aston Martin Vantage GT4",
	52: "Audi R8 LMS GT4",
	53: "BMW M4 GT4",
	55: "Chevrolet Camaro GT4",
	56: "Ginetta G55 GT4",
	57: "KTM X-Bow GT4",
	58: "Maserati MC GT4",
	59: "McLaren 570S GT4",
	60: "Mercedes AMG GT4",
	61: "Porsche 718 Cayman GT4 Clubsport",
	80: "Audi R8 LMS GT2",
	82: "KTM XBOW GT2",
	83: "Maserati MC20 GT2",
	84: "Mercedes AMG GT2",
	85: "Porsche 911 GT2 RS CS Evo",
	86: "Porsche 935",
}
