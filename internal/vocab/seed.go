package vocab

// SeedEntries returns the built-in curated corpus: general words plus
// per-topic words at difficulty 2 (grade-appropriate) and 3 (challenge).
// A few tier-1 entries ride along for advanced-learner content that the
// quiz engine leaves alone.
func SeedEntries() []Entry {
	return []Entry{
		// General purpose.
		{Word: "curious", Definition: "eager to learn or know more about something", Difficulty: 2},
		{Word: "brave", Definition: "showing courage even when something is scary", Difficulty: 2},
		{Word: "enormous", Definition: "extremely large in size", Difficulty: 2},
		{Word: "whisper", Definition: "to speak very softly and quietly", Difficulty: 2},
		{Word: "journey", Definition: "a trip from one place to another", Difficulty: 2},
		{Word: "discover", Definition: "to find something for the first time", Difficulty: 2},
		{Word: "gleaming", Definition: "shining brightly", Difficulty: 2},
		{Word: "clever", Definition: "quick to understand and learn", Difficulty: 2},
		{Word: "ancient", Definition: "very, very old; from a long time ago", Difficulty: 2},
		{Word: "delighted", Definition: "feeling great pleasure and happiness", Difficulty: 2},
		{Word: "mysterious", Definition: "strange and hard to explain or understand", Difficulty: 3},
		{Word: "magnificent", Definition: "extremely beautiful or impressive", Difficulty: 3},
		{Word: "perseverance", Definition: "continuing to try even when something is difficult", Difficulty: 3},
		{Word: "luminous", Definition: "giving off light; glowing", Difficulty: 3},
		{Word: "treacherous", Definition: "full of hidden dangers", Difficulty: 3},
		{Word: "astonished", Definition: "greatly surprised or amazed", Difficulty: 3},
		{Word: "resilient", Definition: "able to recover quickly from difficulties", Difficulty: 3},
		{Word: "ubiquitous", Definition: "found everywhere at the same time", Difficulty: 1},

		// Space.
		{Word: "orbit", Definition: "the curved path of an object around a planet or star", Difficulty: 2, Topic: "space"},
		{Word: "astronaut", Definition: "a person trained to travel in space", Difficulty: 2, Topic: "space"},
		{Word: "gravity", Definition: "the force that pulls things toward the ground", Difficulty: 2, Topic: "space"},
		{Word: "telescope", Definition: "a tool that makes faraway things look closer", Difficulty: 2, Topic: "space"},
		{Word: "constellation", Definition: "a group of stars that forms a pattern in the sky", Difficulty: 3, Topic: "space"},
		{Word: "nebula", Definition: "a giant cloud of dust and gas in space", Difficulty: 3, Topic: "space"},

		// Animals.
		{Word: "habitat", Definition: "the natural home of an animal or plant", Difficulty: 2, Topic: "animals"},
		{Word: "nocturnal", Definition: "active at night instead of during the day", Difficulty: 2, Topic: "animals"},
		{Word: "predator", Definition: "an animal that hunts other animals for food", Difficulty: 2, Topic: "animals"},
		{Word: "camouflage", Definition: "colors or patterns that help an animal hide", Difficulty: 3, Topic: "animals"},
		{Word: "migration", Definition: "the long journey animals make with the seasons", Difficulty: 3, Topic: "animals"},

		// Ocean.
		{Word: "current", Definition: "water moving in one direction in the ocean", Difficulty: 2, Topic: "ocean"},
		{Word: "coral", Definition: "tiny sea creatures that build colorful reefs", Difficulty: 2, Topic: "ocean"},
		{Word: "tide", Definition: "the rise and fall of the sea during the day", Difficulty: 2, Topic: "ocean"},
		{Word: "bioluminescent", Definition: "able to make its own glowing light", Difficulty: 3, Topic: "ocean"},
		{Word: "abyss", Definition: "the deepest, darkest part of the ocean", Difficulty: 3, Topic: "ocean"},

		// Dinosaurs.
		{Word: "fossil", Definition: "the remains of a plant or animal preserved in rock", Difficulty: 2, Topic: "dinosaurs"},
		{Word: "herbivore", Definition: "an animal that eats only plants", Difficulty: 2, Topic: "dinosaurs"},
		{Word: "extinct", Definition: "no longer existing anywhere on Earth", Difficulty: 2, Topic: "dinosaurs"},
		{Word: "paleontologist", Definition: "a scientist who studies fossils", Difficulty: 3, Topic: "dinosaurs"},
		{Word: "prehistoric", Definition: "from the time before written history", Difficulty: 3, Topic: "dinosaurs"},

		// Sports.
		{Word: "athlete", Definition: "a person who is good at sports and games", Difficulty: 2, Topic: "sports"},
		{Word: "teamwork", Definition: "working together with others toward a goal", Difficulty: 2, Topic: "sports"},
		{Word: "champion", Definition: "the winner of a competition", Difficulty: 2, Topic: "sports"},
		{Word: "endurance", Definition: "the strength to keep going for a long time", Difficulty: 3, Topic: "sports"},
		{Word: "agility", Definition: "the ability to move quickly and easily", Difficulty: 3, Topic: "sports"},

		// Magic.
		{Word: "enchanted", Definition: "placed under a magic spell", Difficulty: 2, Topic: "magic"},
		{Word: "potion", Definition: "a magical drink that causes a special effect", Difficulty: 2, Topic: "magic"},
		{Word: "quest", Definition: "a long search for something important", Difficulty: 2, Topic: "magic"},
		{Word: "sorcerer", Definition: "a person who practices powerful magic", Difficulty: 3, Topic: "magic"},
		{Word: "illusion", Definition: "something that tricks your eyes or mind", Difficulty: 3, Topic: "magic"},
	}
}
