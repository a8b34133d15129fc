package memory

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	models "github.com/efad07/lumina/model"
)

// SeedPassword is the password every fixture account accepts.
const SeedPassword = "lumina-demo"

// seed loads the demo corpus: four users with a small follow graph, five
// posts and two message threads. Counters are consistent with the backing
// sets by construction.
func seed(s *store) {
	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("failed to hash seed password: %v", err)
	}

	now := time.Now()

	s.users = []*models.User{
		{
			ID:           "u1",
			Username:     "alex_creator",
			Email:        "alex@lumina.io",
			PasswordHash: string(hash),
			FullName:     "Alex Rivera",
			AvatarURL:    "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=256&h=256&q=80",
			CoverURL:     "https://images.unsplash.com/photo-1504805572947-34fad45aed93?w=1200&q=80",
			Bio:          "Digital nomad & visual storyteller. Capturing moments across the globe.",
			Location:     "Kyoto, Japan",
			Website:      "alexrivera.com",
			Followers:    2,
			Following:    2,
			FollowingIDs: []string{"u2", "u3"},
			JoinedDate:   now.AddDate(0, -8, 0),
		},
		{
			ID:           "u2",
			Username:     "sarah_writes",
			Email:        "sarah@lumina.io",
			PasswordHash: string(hash),
			FullName:     "Sarah Chen",
			AvatarURL:    "https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=256&h=256&q=80",
			CoverURL:     "https://images.unsplash.com/photo-1486312338219-ce68d2c6f44d?w=1200&q=80",
			Bio:          "Tech enthusiast and coffee addict. Writing about the future of AI.",
			Location:     "San Francisco, CA",
			Website:      "sarahwrites.tech",
			Followers:    2,
			Following:    2,
			FollowingIDs: []string{"u1", "u4"},
			JoinedDate:   now.AddDate(0, -6, 0),
		},
		{
			ID:           "u3",
			Username:     "marcus_design",
			Email:        "marcus@lumina.io",
			PasswordHash: string(hash),
			FullName:     "Marcus Johnson",
			AvatarURL:    "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=256&h=256&q=80",
			CoverURL:     "https://images.unsplash.com/photo-1600607686527-6fb886090705?w=1200&q=80",
			Bio:          "Minimalist designer. Less is more.",
			Location:     "Stockholm, Sweden",
			Website:      "marcus.design",
			Followers:    2,
			Following:    1,
			FollowingIDs: []string{"u1"},
			JoinedDate:   now.AddDate(0, -10, 0),
		},
		{
			ID:           "u4",
			Username:     "elena_eats",
			Email:        "elena@lumina.io",
			PasswordHash: string(hash),
			FullName:     "Elena Rodriguez",
			AvatarURL:    "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=256&h=256&q=80",
			CoverURL:     "https://images.unsplash.com/photo-1493770348161-369560ae357d?w=1200&q=80",
			Bio:          "Food critic & home cook. Exploring flavors.",
			Location:     "Madrid, Spain",
			Website:      "elenascookbook.com",
			Followers:    1,
			Following:    2,
			FollowingIDs: []string{"u2", "u3"},
			JoinedDate:   now.AddDate(0, -4, 0),
		},
	}

	s.posts = []*models.Post{
		{
			ID:           "p1",
			AuthorID:     "u1",
			AuthorName:   "Alex Rivera",
			AuthorAvatar: s.users[0].AvatarURL,
			Caption:      "The sunrise in Kyoto was absolutely breathtaking today. There is something magical about the silence of the morning before the city wakes up.",
			ImageURL:     "https://images.unsplash.com/photo-1493976040374-85c8e12f0c0e?w=800&q=80",
			Likes:        2,
			Comments:     0,
			CreatedAt:    now.Add(-24 * time.Hour),
			LikedBy:      []string{"u2", "u3"},
			SavedBy:      []string{},
		},
		{
			ID:           "p2",
			AuthorID:     "u2",
			AuthorName:   "Sarah Chen",
			AuthorAvatar: s.users[1].AvatarURL,
			Caption:      "Just published my latest article on neural networks. Here is a quick snippet of my workspace setup for deep work sessions.",
			ImageURL:     "https://images.unsplash.com/photo-1488190211105-8b0e65b80b4e?w=800&q=80",
			Likes:        3,
			Comments:     0,
			CreatedAt:    now.Add(-1 * time.Hour),
			LikedBy:      []string{"u1", "u3", "u4"},
			SavedBy:      []string{},
		},
		{
			ID:           "p3",
			AuthorID:     "u3",
			AuthorName:   "Marcus Johnson",
			AuthorAvatar: s.users[2].AvatarURL,
			Caption:      "Architecture is frozen music. Exploring the lines and curves of modern cityscapes.",
			ImageURL:     "https://images.unsplash.com/photo-1511818966892-d7d671e672a2?w=800&q=80",
			Likes:        3,
			Comments:     0,
			CreatedAt:    now.Add(-48 * time.Hour),
			LikedBy:      []string{"u1", "u2", "u4"},
			SavedBy:      []string{},
		},
		{
			ID:           "p4",
			AuthorID:     "u4",
			AuthorName:   "Elena Rodriguez",
			AuthorAvatar: s.users[3].AvatarURL,
			Caption:      "Homemade pasta day! Nothing beats fresh basil and tomatoes from the garden.",
			ImageURL:     "https://images.unsplash.com/photo-1551183053-bf91a1d81141?w=800&q=80",
			Likes:        1,
			Comments:     0,
			CreatedAt:    now.Add(-12 * time.Hour),
			LikedBy:      []string{"u2"},
			SavedBy:      []string{},
		},
		{
			ID:           "p5",
			AuthorID:     "u1",
			AuthorName:   "Alex Rivera",
			AuthorAvatar: s.users[0].AvatarURL,
			Caption:      "Street food adventures in Osaka.",
			ImageURL:     "https://images.unsplash.com/photo-1534081333815-ae5019106622?w=800&q=80",
			Likes:        2,
			Comments:     0,
			CreatedAt:    now.Add(-139 * time.Hour),
			LikedBy:      []string{"u3", "u4"},
			SavedBy:      []string{},
		},
	}

	s.messages = []*models.Message{
		{
			ID:         "m1",
			SenderID:   "u1",
			ReceiverID: "u2",
			Content:    "Hey Sarah! Loved your article on neural networks.",
			CreatedAt:  now.Add(-3 * time.Hour),
			IsRead:     true,
		},
		{
			ID:         "m2",
			SenderID:   "u2",
			ReceiverID: "u1",
			Content:    "Thanks Alex! Means a lot coming from you.",
			CreatedAt:  now.Add(-150 * time.Minute),
			IsRead:     true,
		},
		{
			ID:         "m3",
			SenderID:   "u3",
			ReceiverID: "u1",
			Content:    "Are you still in Kyoto?",
			CreatedAt:  now.Add(-80 * time.Minute),
			IsRead:     false,
		},
	}
}
