package vocab

// seedProducts is the built-in catalog of common household items, used to
// pre-fill input suggestions. Learned names extend it at runtime.
var seedProducts = []string{
	// Mliječni proizvodi i jaja
	"mlijeko", "jogurt", "kefir", "vrhnje", "kiselo vrhnje", "sir", "svježi sir",
	"maslac", "margarin", "jaja",
	// Pekara
	"kruh", "pecivo", "kifle", "tost", "krušne mrvice",
	// Meso i riba
	"piletina", "puretina", "junetina", "svinjetina", "mljeveno meso",
	"kobasice", "šunka", "panceta", "salama", "riba", "tuna", "srdele",
	// Voće
	"jabuke", "banane", "naranče", "limun", "grožđe", "kruške", "breskve",
	"lubenica", "jagode", "borovnice", "kivi",
	// Povrće
	"rajčica", "krastavci", "paprika", "luk", "mladi luk", "češnjak",
	"krumpir", "mrkva", "tikvice", "patlidžan", "zelena salata", "kupus",
	"brokula", "cvjetača", "špinat", "grah", "grašak", "kukuruz", "gljive",
	// Osnovne namirnice
	"brašno", "šećer", "sol", "papar", "riža", "tjestenina", "špageti",
	"njoki", "palenta", "zobene pahuljice", "müsli", "ulje", "maslinovo ulje",
	"ocat", "senf", "majoneza", "kečap", "Vegeta", "kvasac", "puding",
	// Pića
	"voda", "mineralna voda", "sok", "kava", "čaj", "pivo", "vino",
	// Slatko i slano
	"čokolada", "keksi", "napolitanke", "bomboni", "čips", "štapići",
	"kikiriki", "med", "džem", "Nutella", "sladoled",
	// Kućanstvo
	"toalet papir", "papirnati ručnici", "salvete", "deterdžent za rublje",
	"omekšivač", "deterdžent za suđe", "sredstvo za čišćenje", "spužve",
	"vrećice za smeće", "alu folija", "prozirna folija", "papir za pečenje",
	"žarulje", "baterije",
	// Higijena
	"sapun", "šampon", "regenerator", "gel za tuširanje", "pasta za zube",
	"četkica za zube", "dezodorans", "britvice", "vata", "maramice",
}
