package csvio

// Template is the static reference material handed to quiz authors: the
// header list, two worked sample rows and free-text instructions.
type Template struct {
	Headers      []string            `json:"headers"`
	SampleData   []map[string]string `json:"sampleData"`
	Instructions string              `json:"instructions"`
}

// NewTemplate returns the import template. It shares Headers() with the
// codec so the column set cannot drift.
func NewTemplate() Template {
	return Template{
		Headers: Headers(),
		SampleData: []map[string]string{
			{
				"Type":              "mcq",
				"Titre":             "Capitale de la France",
				"Question":          "Quelle est la capitale de la France ?",
				"Note":              "1",
				"Pénalité":          "0",
				"Feedback général":  "Paris est la capitale et la plus grande ville de France.",
				"Tags":              "géographie,france",
				"Réponse 1":         "Paris",
				"Fraction 1":        "100",
				"Feedback 1":        "Correct !",
				"Réponse 2":         "Lyon",
				"Fraction 2":        "0",
				"Feedback 2":        "Non, Lyon est la troisième ville de France.",
				"Réponse 3":         "Marseille",
				"Fraction 3":        "0",
				"Feedback 3":        "Non, Marseille est la deuxième ville de France.",
				"Réponse 4":         "Toulouse",
				"Fraction 4":        "0",
				"Feedback 4":        "Non, Toulouse est la quatrième ville de France.",
				"Options spéciales": "single=true;shuffle=false",
			},
			{
				"Type":             "truefalse",
				"Titre":            "Population française",
				"Question":         "La France compte plus de 70 millions d'habitants.",
				"Note":             "1",
				"Pénalité":         "0",
				"Feedback général": "La France compte environ 67 millions d'habitants.",
				"Tags":             "géographie,démographie",
				"Réponse 1":        "Vrai",
				"Fraction 1":       "0",
				"Feedback 1":       "Faux, la France compte environ 67 millions d'habitants.",
				"Réponse 2":        "Faux",
				"Fraction 2":       "100",
				"Feedback 2":       "Correct !",
			},
		},
		Instructions: templateInstructions,
	}
}

const templateInstructions = `Instructions pour l'import CSV :

1. TYPES DE QUESTIONS SUPPORTÉS :
   - mcq : Questions à choix multiples
   - truefalse : Questions Vrai/Faux
   - shortanswer : Questions à réponse courte
   - matching : Questions d'appariement

2. COLONNES OBLIGATOIRES :
   - Type : Type de question (mcq, truefalse, shortanswer, matching)
   - Titre : Titre de la question
   - Question : Texte de la question
   - Note : Note par défaut (nombre positif)

3. COLONNES OPTIONNELLES :
   - Pénalité : Pénalité en pourcentage (0-100)
   - Feedback général : Feedback général pour la question
   - Tags : Tags séparés par des virgules
   - Réponse 1-5 : Textes des réponses (maximum 5)
   - Fraction 1-5 : Pourcentages des réponses (0-100)
   - Feedback 1-5 : Feedbacks des réponses
   - Options spéciales : Options spécifiques au type de question

4. OPTIONS SPÉCIALES :
   Pour QCM : single=true/false;shuffle=true/false
   Pour Réponse courte : caseSensitive=true/false
   Pour Appariement : shuffle=true/false
   Séparer par des points-virgules

5. RÈGLES IMPORTANTES :
   - Encodage UTF-8 requis
   - Utiliser des guillemets pour les textes contenant des virgules
   - Pour les questions d'appariement, utiliser le format "Question:Réponse"
   - La somme des fractions doit être cohérente selon le type de question

6. EXEMPLE D'APPARIEMENT :
   Type: matching
   Réponse 1: "Paris:France"
   Réponse 2: "Londres:Angleterre"
   Réponse 3: "Rome:Italie"
`
