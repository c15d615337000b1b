package domain

// DefaultCatalog is the catalog used before any persisted state is loaded.
func DefaultCatalog() Catalog {
	return Catalog{
		AllowHighConfidenceEdit: true,
		MinConfidenceThreshold:  70,
		DarkMode:                false,
		Sucursales: map[ClientType][]string{
			ClientOXXO: {
				"Acapulco", "Atlantico", "Bonfil", "Calandrias", "Cerro Colorado", "Coto 12", "Del Sol",
				"Ejercito", "Ejercito Mexicano", "El Conchi", "El Tiburon", "El Toreo", "Escoboza", "Garcia",
				"Gaviotas", "Girasoles", "Hospital Militar", "Infante", "Jardines Riviera", "Las Garzas",
				"Los Portales", "Los Sauces", "Macias", "Maxipista", "Miramar", "Najera", "Nus Wyndham",
				"Perez Arce", "Poniente 14", "Portomolino", "Potrerillo Norte", "Presidencia", "Real del Valle",
				"Rio Elota", "Satelite", "Sur 16", "Sábalo", "Talleres", "Telegrafos", "Telleria", "Urias",
				"Valle del Sol", "Venneto", "Villareal", "Villas del Rey", "Zaragoza", "Zaragoza II",
			},
			ClientKIOSKO: {
				"20 De Noviembre", "Acaponeta", "Alameda", "Alarcon", "Alfredo Bonfil", "Azalea", "Bicentenario",
				"Camaron Sabalo", "Central Mazatlan", "Cerritos", "Cerritos Playa", "Circunvalacion",
				"City Express", "Del Delfin", "El Cid", "El Marino", "El Walamo", "Emilio Barragan", "Estadio",
				"Flores Magon", "Francisco Perez", "Gabriel Leyva", "Gas Cardones", "Gas Cerritos",
				"Gas Concordia", "Gas Habal", "Gas La Marina", "Gasmaz", "Gasmaz Colosio", "Independencia",
				"Insurgentes", "Insurgentes Mazatlan", "Jabalies", "Jaripillo", "Juarez", "Juarez Internacional",
				"La Marina", "Laguna el Rosario", "Las Americas", "Laureles", "Libertad Expresion",
				"Lomas de Mazatlan", "Lopez Portillo", "Madero Villa Union", "Magnolia", "Malecon Escuinapa",
				"Malecon Mazatlan", "Miguel Aleman", "Miguel Hidalgo", "Munich", "Mutualismo", "Occidental",
				"Olimpica", "Paseo Claussen", "Paseo Olas Altas", "Paseo del Centenario", "Paseo del Pacifico",
				"Perez Arce", "Pino Suarez", "Prados del Sol", "Presidentes", "Querétaro", "Rafael Buelna",
				"Real Pacifico", "Rio Chachalacas", "Sabalo Country", "Salvador Allende", "Santa Rosa",
				"Santa Teresa", "Solidaridad", "Tecuala", "Universo", "Urbivillas", "Valle de Urias",
				"Villa Galaxia", "Villas del Rey", "Villas del Sol", "Zaragoza", "Zona Dorada",
			},
		},
		Precios: Prices{
			Defaults: map[ClientType]PriceTable{
				ClientOXXO:   {Size5kg: 17.5, Size15kg: 37.5},
				ClientKIOSKO: {Size5kg: 16.0, Size15kg: 45.0},
			},
			Branches: map[ClientType]map[string]PriceTable{
				ClientOXXO: {
					"Girasoles": {Size5kg: 17.5, Size15kg: 37.5},
					"Zaragoza":  {Size5kg: 17.5, Size15kg: 37.5},
					// preferential pricing
					"Atlantico": {Size5kg: 17.0, Size15kg: 37.0},
				},
				ClientKIOSKO: {
					"20 De Noviembre": {Size5kg: 15.0, Size15kg: 45.0},
					"Gas Cardones":    {Size5kg: 15.0, Size15kg: 45.0},
				},
			},
		},
	}
}
