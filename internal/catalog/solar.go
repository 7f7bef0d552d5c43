package catalog

// Default returns the solar system catalog. Each call returns a fresh copy
// so callers may modify it freely.
func Default() *Catalog {
	return &Catalog{
		Star: Star{
			Name:           "Sun",
			Radius:         10,
			RotationPeriod: 609.12,
			Texture:        "2k_sun.jpg",
			Info: Info{
				Name:           "Sun",
				Diameter:       "1,392,000 km",
				DistSun:        "0 (center)",
				OrbPeriod:      "N/A",
				RotPeriod:      "25-35 days",
				Moons:          "N/A",
				FunFact:        "The Sun is a star that gives us light and heat. It's 109 times wider than Earth!",
				SizeComparison: "Larger than Earth (diameter 109 times Earth)",
				MassComparison: "Mass: 333,000 times Earth",
			},
		},
		Planets:    planets(),
		Belts:      belts(),
		Background: "2k_stars_milky_way.jpg",
		Home:       "Earth",
	}
}

func planets() []Body {
	return []Body{
		{
			Name:           "Mercury",
			Radius:         0.383 * EarthRadius,
			Distance:       0.387 * AUScale,
			OrbitalPeriod:  0.241,
			RotationPeriod: 1407.6,
			Textures:       Textures{Color: "2k_mercury.jpg"},
			Info: Info{
				Name:           "Mercury",
				Diameter:       "4,879 km",
				DistSun:        "0.39 AU",
				OrbPeriod:      "88 days",
				RotPeriod:      "59 days",
				Moons:          "0",
				FunFact:        "Mercury is the smallest planet and closest to the Sun. It has no moons and a day longer than its year!",
				SizeComparison: "Smaller than Earth (diameter 38% of Earth)",
				MassComparison: "Mass: 5.5% of Earth",
			},
		},
		{
			Name:           "Venus",
			Radius:         0.949 * EarthRadius,
			Distance:       0.723 * AUScale,
			OrbitalPeriod:  0.615,
			RotationPeriod: -5832.5,
			Textures:       Textures{Color: "2k_venus_surface.jpg", Normal: "2k_venus_atmosphere.jpg"},
			Info: Info{
				Name:           "Venus",
				Diameter:       "12,104 km",
				DistSun:        "0.72 AU",
				OrbPeriod:      "225 days",
				RotPeriod:      "243 days (retrograde)",
				Moons:          "0",
				FunFact:        "Venus is the hottest planet with thick clouds. It spins backwards and has no moons!",
				SizeComparison: "Slightly smaller than Earth (diameter 95% of Earth)",
				MassComparison: "Mass: 81.5% of Earth",
			},
		},
		{
			Name:           "Earth",
			Radius:         EarthRadius,
			Distance:       1 * AUScale,
			OrbitalPeriod:  1,
			RotationPeriod: 23.93,
			AxialTilt:      tilt(23.44),
			Textures: Textures{
				Color:    "2k_earth_daymap.jpg",
				Normal:   "2k_earth_normal_map.tif",
				Specular: "2k_earth_specular_map.tif",
			},
			Clouds: &Shell{Scale: 1.01, Texture: "2k_earth_clouds.jpg"},
			Satellites: []Body{
				{
					Name:           "Moon",
					Radius:         0.272 * EarthRadius,
					Distance:       3,
					OrbitalPeriod:  0.0748,
					RotationPeriod: 655.2,
					OrbitTilt:      5.145,
					Textures:       Textures{Color: "2k_moon.jpg"},
					Info: Info{
						Name:           "Moon",
						Diameter:       "3,474 km",
						DistSun:        "1 AU (orbits Earth)",
						OrbPeriod:      "27.3 days around Earth",
						RotPeriod:      "27.3 days (tidally locked)",
						Moons:          "N/A",
						FunFact:        "The Moon causes tides on Earth and is tidally locked, so we always see the same side!",
						SizeComparison: "Smaller than Earth (diameter 27% of Earth)",
						MassComparison: "Mass: 1.2% of Earth",
					},
				},
			},
			Info: Info{
				Name:           "Earth",
				Diameter:       "12,756 km",
				DistSun:        "1 AU",
				OrbPeriod:      "365 days",
				RotPeriod:      "24 hours",
				Moons:          "1",
				FunFact:        "Earth is our home with water and life. It has one moon and four seasons due to its tilt!",
				SizeComparison: "Our home planet!",
				MassComparison: "Mass: 1 Earth (reference)",
			},
		},
		{
			Name:           "Mars",
			Radius:         0.532 * EarthRadius,
			Distance:       1.524 * AUScale,
			OrbitalPeriod:  1.881,
			RotationPeriod: 24.62,
			Textures:       Textures{Color: "2k_mars.jpg"},
			Info: Info{
				Name:           "Mars",
				Diameter:       "6,792 km",
				DistSun:        "1.52 AU",
				OrbPeriod:      "687 days",
				RotPeriod:      "25 hours",
				Moons:          "2",
				FunFact:        "Mars is the red planet with the tallest volcano. It has two small moons and dusty storms!",
				SizeComparison: "Smaller than Earth (diameter 53% of Earth)",
				MassComparison: "Mass: 10.7% of Earth",
			},
		},
		{
			Name:           "Jupiter",
			Radius:         11.209 * EarthRadius,
			Distance:       5.204 * AUScale,
			OrbitalPeriod:  11.862,
			RotationPeriod: 9.93,
			Textures:       Textures{Color: "2k_jupiter.jpg"},
			Info: Info{
				Name:           "Jupiter",
				Diameter:       "142,984 km",
				DistSun:        "5.2 AU",
				OrbPeriod:      "12 years",
				RotPeriod:      "10 hours",
				Moons:          "95",
				FunFact:        "Jupiter is the biggest planet, a gas giant with a big red spot storm. It has 95 moons!",
				SizeComparison: "Larger than Earth (diameter 11 times Earth)",
				MassComparison: "Mass: 317.8 times Earth",
			},
		},
		{
			Name:           "Saturn",
			Radius:         9.449 * EarthRadius,
			Distance:       9.582 * AUScale,
			OrbitalPeriod:  29.457,
			RotationPeriod: 10.66,
			Textures:       Textures{Color: "2k_saturn.jpg"},
			Ring:           &Ring{Inner: 1.2, Outer: 2.5, Texture: "2k_saturn_ring_alpha.png"},
			Info: Info{
				Name:           "Saturn",
				Diameter:       "120,536 km",
				DistSun:        "9.58 AU",
				OrbPeriod:      "29 years",
				RotPeriod:      "11 hours",
				Moons:          "146",
				FunFact:        "Saturn has beautiful rings made of ice. It's a gas giant with 146 moons!",
				SizeComparison: "Larger than Earth (diameter 9.5 times Earth)",
				MassComparison: "Mass: 95.2 times Earth",
			},
		},
		{
			Name:           "Uranus",
			Radius:         4.007 * EarthRadius,
			Distance:       19.191 * AUScale,
			OrbitalPeriod:  84.020,
			RotationPeriod: -17.24,
			Textures:       Textures{Color: "2k_uranus.jpg"},
			Info: Info{
				Name:           "Uranus",
				Diameter:       "51,118 km",
				DistSun:        "19.2 AU",
				OrbPeriod:      "84 years",
				RotPeriod:      "17 hours (retrograde)",
				Moons:          "27",
				FunFact:        "Uranus is tilted sideways and spins backwards. It has 27 moons and is very cold!",
				SizeComparison: "Larger than Earth (diameter 4 times Earth)",
				MassComparison: "Mass: 14.5 times Earth",
			},
		},
		{
			Name:           "Neptune",
			Radius:         3.883 * EarthRadius,
			Distance:       30.047 * AUScale,
			OrbitalPeriod:  164.8,
			RotationPeriod: 16.11,
			Textures:       Textures{Color: "2k_neptune.jpg"},
			Info: Info{
				Name:           "Neptune",
				Diameter:       "49,528 km",
				DistSun:        "30 AU",
				OrbPeriod:      "165 years",
				RotPeriod:      "16 hours",
				Moons:          "14",
				FunFact:        "Neptune is the windiest planet with dark storms. It has 14 moons and is blue!",
				SizeComparison: "Larger than Earth (diameter 3.9 times Earth)",
				MassComparison: "Mass: 17.1 times Earth",
			},
		},
	}
}

func belts() []BeltSpec {
	return []BeltSpec{
		{
			Name:        "Asteroid Belt",
			Inner:       2.2 * AUScale,
			Outer:       3.2 * AUScale,
			Count:       5000,
			Jitter:      0.05,
			Color:       "#aaaaaa",
			Rate:        0.0001,
			Interactive: true,
			Info: &Info{
				Name:           "Asteroid Belt",
				Diameter:       "N/A (region)",
				DistSun:        "2.2-3.2 AU",
				OrbPeriod:      "3-6 years (varies)",
				RotPeriod:      "N/A",
				Moons:          "N/A",
				FunFact:        "The Asteroid Belt is a ring of rocky objects between Mars and Jupiter. It's where most asteroids in our solar system are found!",
				SizeComparison: "N/A (vast region, not a planet)",
				MassComparison: "Total mass: less than the Moon",
			},
		},
		{
			Name:   "Kuiper Belt",
			Inner:  30 * AUScale,
			Outer:  50 * AUScale,
			Count:  5000,
			Jitter: 0.05,
			Color:  "#aaaaaa",
			Rate:   0.00005,
		},
	}
}
