package service

import "anoa.com/wodtracker/internal/entity"

// catalog is the movement library every fresh install is seeded with.
var catalog = []entity.Movement{
	{
		Slug:        "air-squat",
		Name:        "Air Squat",
		Category:    entity.MovementCategoryBasics,
		Type:        "Fuerza / Movilidad",
		Description: "La base de todos los movimientos de sentadilla.",
		VideoID:     "rMvwVtlqjTE",
		Muscles:     []string{"Cuádriceps", "Glúteos", "Isquios"},
		KeyPoints:   []string{"Romper paralelo (cadera bajo rodillas)", "Peso en los talones", "Pecho arriba", "Rodillas hacia afuera"},
	},
	{
		Slug:        "back-squat",
		Name:        "Back Squat",
		Category:    entity.MovementCategoryBasics,
		Type:        "Fuerza",
		Description: "Sentadilla con barra en la espalda.",
		VideoID:     "4ZYCwYAuiwE",
		Muscles:     []string{"Cuádriceps", "Glúteos"},
		KeyPoints:   []string{"Romper paralelo", "Peso en talones", "Pecho arriba", "Respiración abdominal"},
	},
	{
		Slug:        "front-squat",
		Name:        "Front Squat",
		Category:    entity.MovementCategoryBasics,
		Type:        "Fuerza",
		Description: "Sentadilla con barra en posición de rack frontal.",
		VideoID:     "m4ytaCJZpl0",
		Muscles:     []string{"Cuádriceps", "Core", "Glúteos"},
		KeyPoints:   []string{"Codos altos", "Torso vertical", "Talones pegados al suelo"},
	},
	{
		Slug:        "overhead-squat",
		Name:        "Overhead Squat",
		Category:    entity.MovementCategoryBasics,
		Type:        "Fuerza / Estabilidad",
		Description: "Sentadilla manteniendo la barra bloqueada sobre la cabeza.",
		VideoID:     "zDWiJ8l-R8I",
		Muscles:     []string{"Hombros", "Core", "Piernas"},
		KeyPoints:   []string{"Axilas al frente", "Barra sobre centro de gravedad", "Empuje activo", "Estabilidad media"},
	},
	{
		Slug:        "deadlift",
		Name:        "Deadlift",
		Category:    entity.MovementCategoryBasics,
		Type:        "Fuerza",
		Description: "Levantamiento de peso muerto desde el suelo.",
		VideoID:     "wV_211i4i9o",
		Muscles:     []string{"Cadena Posterior"},
		KeyPoints:   []string{"Espalda neutra", "Barra pegada a espinillas", "Hombros delante de barra", "Empujar suelo"},
	},
	{
		Slug:        "shoulder-press",
		Name:        "Shoulder Press",
		Category:    entity.MovementCategoryBasics,
		Type:        "Fuerza",
		Description: "Press estricto de hombros.",
		VideoID:     "B-aVuyhvLHU",
		Muscles:     []string{"Deltoides", "Tríceps"},
		KeyPoints:   []string{"Cuerpo rígido", "Trayectoria vertical", "Cabeza se aparta", "Bloqueo completo"},
	},
	{
		Slug:        "push-press",
		Name:        "Push Press",
		Category:    entity.MovementCategoryBasics,
		Type:        "Potencia",
		Description: "Press de hombros con ayuda de las piernas (Dip & Drive).",
		VideoID:     "j9916671g-U",
		Muscles:     []string{"Hombros", "Piernas"},
		KeyPoints:   []string{"Dip vertical", "Extensión explosiva de cadera", "Talones apoyados en el dip"},
	},
	{
		Slug:        "push-jerk",
		Name:        "Push Jerk",
		Category:    entity.MovementCategoryBasics,
		Type:        "Potencia",
		Description: "Press con recepción en flexión de rodillas.",
		VideoID:     "V-hKuAfWNUw",
		Muscles:     []string{"Hombros", "Piernas"},
		KeyPoints:   []string{"Salto y recepción", "Brazos bloqueados al recibir", "Cadera extendida antes de empujar"},
	},
	{
		Slug:        "snatch",
		Name:        "Snatch",
		Category:    entity.MovementCategoryWeightlifting,
		Type:        "Potencia / Técnica",
		Description: "Arrancada: barra del suelo a overhead en un movimiento.",
		VideoID:     "9xQp2sldyts",
		Muscles:     []string{"Full Body"},
		KeyPoints:   []string{"Triple extensión", "Recepción profunda", "Brazos relajados inicio", "Velocidad"},
	},
	{
		Slug:        "power-snatch",
		Name:        "Power Snatch",
		Category:    entity.MovementCategoryWeightlifting,
		Type:        "Potencia",
		Description: "Arrancada recibiendo la barra por encima del paralelo.",
		VideoID:     "82100-n_4-Q",
		Muscles:     []string{"Full Body"},
		KeyPoints:   []string{"Recepción alta", "Velocidad de codos", "Extensión completa"},
	},
	{
		Slug:        "clean",
		Name:        "Clean",
		Category:    entity.MovementCategoryWeightlifting,
		Type:        "Potencia",
		Description: "Cargada: barra del suelo a los hombros (Squat).",
		VideoID:     "Kz0K37h65Pe",
		Muscles:     []string{"Trapecios", "Piernas"},
		KeyPoints:   []string{"Codos rápidos", "Extensión cadera", "Contacto muslo", "Recepción sólida"},
	},
	{
		Slug:        "power-clean",
		Name:        "Power Clean",
		Category:    entity.MovementCategoryWeightlifting,
		Type:        "Potencia",
		Description: "Cargada recibiendo por encima del paralelo.",
		VideoID:     "KjGvqhaxU70",
		Muscles:     []string{"Trapecios", "Piernas"},
		KeyPoints:   []string{"Recepción parcial", "Codos rápidos al frente", "Espalda recta"},
	},
	{
		Slug:        "clean-and-jerk",
		Name:        "Clean & Jerk",
		Category:    entity.MovementCategoryWeightlifting,
		Type:        "Potencia",
		Description: "Dos tiempos: Cargada y Envión.",
		VideoID:     "8miqQQJEsO0",
		Muscles:     []string{"Full Body"},
		KeyPoints:   []string{"Paciencia primer tirón", "Dip vertical Jerk", "Recepción estable"},
	},
	{
		Slug:        "split-jerk",
		Name:        "Split Jerk",
		Category:    entity.MovementCategoryWeightlifting,
		Type:        "Potencia",
		Description: "Envión con recepción en tijera.",
		VideoID:     "Wp4BlxcftkE",
		Muscles:     []string{"Hombros", "Piernas"},
		KeyPoints:   []string{"Pie delantero plano", "Talón trasero levantado", "Torso vertical", "Bloqueo sólido"},
	},
	{
		Slug:        "thruster",
		Name:        "Thruster",
		Category:    entity.MovementCategoryWeightlifting,
		Type:        "Metabólico / Fuerza",
		Description: "Combinación de Front Squat y Push Press. Devastador.",
		VideoID:     "L219ltL15kq",
		Muscles:     []string{"Piernas", "Hombros", "Pulmones"},
		KeyPoints:   []string{"Un solo movimiento fluido", "Respiración rítmica", "Extensión potente de cadera"},
	},
	{
		Slug:        "pull-up",
		Name:        "Pull-Up",
		Category:    entity.MovementCategoryGymnastics,
		Type:        "Gimnasia",
		Description: "Dominada pasando la barbilla sobre la barra.",
		VideoID:     "aAgglkKyECo",
		Muscles:     []string{"Dorsales", "Bíceps"},
		KeyPoints:   []string{"Kipping rítmico", "Empuje lejos arriba", "Barbilla supera barra"},
	},
	{
		Slug:        "chest-to-bar",
		Name:        "Chest to Bar (C2B)",
		Category:    entity.MovementCategoryGymnastics,
		Type:        "Gimnasia",
		Description: "Dominada donde el pecho toca la barra.",
		VideoID:     "4q7s3c3J2yE",
		Muscles:     []string{"Dorsales", "Bíceps"},
		KeyPoints:   []string{"Tirón más potente", "Contacto físico pecho-barra", "Codos atrás"},
	},
	{
		Slug:        "toes-to-bar",
		Name:        "Toes to Bar (T2B)",
		Category:    entity.MovementCategoryGymnastics,
		Type:        "Core / Gimnasia",
		Description: "Colgado, tocar la barra con ambos pies simultáneamente.",
		VideoID:     "6dHdpbL9i5w",
		Muscles:     []string{"Abdominales", "Flexores"},
		KeyPoints:   []string{"Kipping constante", "Pies tocan barra", "Hombros activos", "Ritmo"},
	},
	{
		Slug:        "bar-muscle-up",
		Name:        "Bar Muscle-Up",
		Category:    entity.MovementCategoryGymnastics,
		Type:        "Gimnasia Avanzada",
		Description: "Subir todo el cuerpo por encima de la barra.",
		VideoID:     "OC7sX_5XjF0",
		Muscles:     []string{"Full Body"},
		KeyPoints:   []string{"Cadera a la barra", "Transición rápida", "Press final"},
	},
	{
		Slug:        "ring-muscle-up",
		Name:        "Ring Muscle-Up",
		Category:    entity.MovementCategoryGymnastics,
		Type:        "Gimnasia Avanzada",
		Description: "Muscle-up en anillas.",
		VideoID:     "G8W0BhzrWcs",
		Muscles:     []string{"Full Body"},
		KeyPoints:   []string{"False grip (opcional)", "Tirón al esternón", "Transición agresiva", "Bloqueo"},
	},
	{
		Slug:        "handstand-push-up",
		Name:        "Handstand Push-Up (HSPU)",
		Category:    entity.MovementCategoryGymnastics,
		Type:        "Fuerza",
		Description: "Flexión de pino invertido.",
		VideoID:     "0wDEO6shpVg",
		Muscles:     []string{"Hombros", "Tríceps"},
		KeyPoints:   []string{"Trípode", "Kipping explosivo", "Bloqueo cabeza metida"},
	},
	{
		Slug:        "handstand-walk",
		Name:        "Handstand Walk",
		Category:    entity.MovementCategoryGymnastics,
		Type:        "Equilibrio",
		Description: "Caminar sobre las manos.",
		VideoID:     "0gX0j2x5j0k",
		Muscles:     []string{"Hombros", "Core"},
		KeyPoints:   []string{"Cuerpo apretado", "Mirada al suelo", "Pasos cortos"},
	},
	{
		Slug:        "burpee",
		Name:        "Burpee",
		Category:    entity.MovementCategoryGymnastics,
		Type:        "Metabólico",
		Description: "Pecho al suelo y salto.",
		VideoID:     "auBLPXO8Fww",
		Muscles:     []string{"Full Body"},
		KeyPoints:   []string{"Pecho suelo", "Extensión cadera aire", "Eficiencia"},
	},
	{
		Slug:        "pistol-squat",
		Name:        "Pistol Squat",
		Category:    entity.MovementCategoryGymnastics,
		Type:        "Fuerza / Equilibrio",
		Description: "Sentadilla a una pierna.",
		VideoID:     "qDcniqddTeE",
		Muscles:     []string{"Piernas"},
		KeyPoints:   []string{"Talón apoyado", "Pie libre no toca suelo", "Romper paralelo"},
	},
	{
		Slug:        "ring-dip",
		Name:        "Ring Dip",
		Category:    entity.MovementCategoryGymnastics,
		Type:        "Fuerza",
		Description: "Fondo en anillas.",
		VideoID:     "c4DAnQ6DtF8",
		Muscles:     []string{"Pecho", "Tríceps"},
		KeyPoints:   []string{"Bíceps toca anilla abajo", "Bloqueo completo arriba", "Estabilidad"},
	},
	{
		Slug:        "rope-climb",
		Name:        "Rope Climb",
		Category:    entity.MovementCategoryGymnastics,
		Type:        "Técnica",
		Description: "Subir la cuerda.",
		VideoID:     "lIEI0d5l8AI",
		Muscles:     []string{"Dorsales", "Agarre"},
		KeyPoints:   []string{"Uso de pies (J-Hook)", "Brazos estirados al reposicionar", "Seguridad al bajar"},
	},
	{
		Slug:        "double-under",
		Name:        "Double Under",
		Category:    entity.MovementCategoryCardio,
		Type:        "Resistencia",
		Description: "La cuerda pasa dos veces por salto.",
		VideoID:     "8XZGdbYP9fw",
		Muscles:     []string{"Gemelos", "Hombros"},
		KeyPoints:   []string{"Salto vertical", "Muñecas rápidas", "Codos pegados", "Relajación"},
	},
	{
		Slug:        "box-jump",
		Name:        "Box Jump",
		Category:    entity.MovementCategoryCardio,
		Type:        "Potencia",
		Description: "Salto al cajón.",
		VideoID:     "kxxcD1u4d0c",
		Muscles:     []string{"Piernas"},
		KeyPoints:   []string{"Despegue dos pies", "Extensión cadera arriba", "Aterrizaje suave"},
	},
	{
		Slug:        "rowing",
		Name:        "Rowing",
		Category:    entity.MovementCategoryCardio,
		Type:        "Resistencia",
		Description: "Remo en ergómetro.",
		VideoID:     "H0r_ZCp88pY",
		Muscles:     []string{"Full Body"},
		KeyPoints:   []string{"Piernas-Cuerpo-Brazos", "Cadena recta", "Talones pegados al empujar"},
	},
	{
		Slug:        "assault-bike",
		Name:        "Assault Bike",
		Category:    entity.MovementCategoryCardio,
		Type:        "Metabólico",
		Description: "Bicicleta de aire.",
		VideoID:     "O8tGrT-d8-M",
		Muscles:     []string{"Piernas", "Brazos"},
		KeyPoints:   []string{"Uso de brazos y piernas", "Respiración controlada", "Ajuste sillín"},
	},
	{
		Slug:        "ski-erg",
		Name:        "Ski Erg",
		Category:    entity.MovementCategoryCardio,
		Type:        "Resistencia",
		Description: "Simulador de esquí nórdico.",
		VideoID:     "P7qpoJmX91I",
		Muscles:     []string{"Dorsales", "Core", "Tríceps"},
		KeyPoints:   []string{"Triple extensión", "Uso del peso corporal", "Brazos estirados inicio"},
	},
	{
		Slug:        "wall-ball",
		Name:        "Wall Ball",
		Category:    entity.MovementCategoryAccessories,
		Type:        "Metabólico",
		Description: "Lanzamiento de balón medicinal a la pared desde sentadilla.",
		VideoID:     "_KfCGKfP1_g",
		Muscles:     []string{"Piernas", "Hombros"},
		KeyPoints:   []string{"Sentadilla profunda", "Lanzamiento al subir", "Recibir balón cerca cara"},
	},
	{
		Slug:        "kettlebell-swing",
		Name:        "Kettlebell Swing",
		Category:    entity.MovementCategoryAccessories,
		Type:        "Cadena Posterior",
		Description: "Balanceo de pesa rusa (Americano o Ruso).",
		VideoID:     "1cVT3ee9mgU",
		Muscles:     []string{"Glúteos", "Isquios", "Espalda"},
		KeyPoints:   []string{"Golpe de cadera", "Espalda neutra", "Brazos como correas"},
	},
	{
		Slug:        "turkish-get-up",
		Name:        "Turkish Get Up",
		Category:    entity.MovementCategoryAccessories,
		Type:        "Estabilidad / Core",
		Description: "Levantarse del suelo con una pesa en alto.",
		VideoID:     "sgd8n917Zv0",
		Muscles:     []string{"Full Body"},
		KeyPoints:   []string{"Mirada a la pesa", "Pasos controlados", "Brazo siempre vertical"},
	},
	{
		Slug:        "dumbbell-snatch",
		Name:        "Dumbbell Snatch",
		Category:    entity.MovementCategoryAccessories,
		Type:        "Potencia",
		Description: "Arrancada con mancuerna a una mano.",
		VideoID:     "HHsOcHb_IFI",
		Muscles:     []string{"Full Body"},
		KeyPoints:   []string{"Espalda recta", "Extensión cadera", "Bloqueo arriba"},
	},
	{
		Slug:        "walking-lunge",
		Name:        "Walking Lunge",
		Category:    entity.MovementCategoryAccessories,
		Type:        "Fuerza Unilateral",
		Description: "Zancadas caminando.",
		VideoID:     "DlhojghkaQ0",
		Muscles:     []string{"Piernas", "Glúteos"},
		KeyPoints:   []string{"Rodilla trasera toca suelo", "Torso vertical", "Ángulo 90 grados"},
	},
}
