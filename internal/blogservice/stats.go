package blogservice

// The functions in this file are pure: they never touch the database, never
// mutate their input and give order-stable results. Empty input is a defined
// case, not an error.

type Favorite struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

type AuthorBlogCount struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

type AuthorLikeCount struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

type Stats struct {
	Blogs      int              `json:"blogs"`
	TotalLikes int              `json:"total_likes"`
	Favorite   *Favorite        `json:"favorite_blog"`
	MostBlogs  *AuthorBlogCount `json:"most_blogs"`
	MostLikes  *AuthorLikeCount `json:"most_likes"`
}

// TotalLikes sums the likes across all blogs; zero for an empty slice.
func TotalLikes(blogs []Blog) int {
	total := 0
	for _, b := range blogs {
		total += b.Likes
	}

	return total
}

// FavoriteBlog returns the blog with the most likes, or nil for an empty
// slice. On a tie the first maximal blog in input order wins.
func FavoriteBlog(blogs []Blog) *Favorite {
	if len(blogs) == 0 {
		return nil
	}

	favorite := blogs[0]
	for _, b := range blogs[1:] {
		if b.Likes > favorite.Likes {
			favorite = b
		}
	}

	return &Favorite{
		Title:  favorite.Title,
		Author: favorite.Author,
		Likes:  favorite.Likes,
	}
}

// MostBlogs returns the author with the most blogs, or nil for an empty
// slice. Ties go to the author that appeared first in the input.
func MostBlogs(blogs []Blog) *AuthorBlogCount {
	if len(blogs) == 0 {
		return nil
	}

	counts := make(map[string]int)
	var order []string

	for _, b := range blogs {
		if _, seen := counts[b.Author]; !seen {
			order = append(order, b.Author)
		}
		counts[b.Author]++
	}

	top := order[0]
	for _, author := range order[1:] {
		if counts[author] > counts[top] {
			top = author
		}
	}

	return &AuthorBlogCount{Author: top, Blogs: counts[top]}
}

// MostLikes returns the author whose blogs have the highest cumulative likes,
// or nil for an empty slice. Same tie-break as MostBlogs.
func MostLikes(blogs []Blog) *AuthorLikeCount {
	if len(blogs) == 0 {
		return nil
	}

	likes := make(map[string]int)
	var order []string

	for _, b := range blogs {
		if _, seen := likes[b.Author]; !seen {
			order = append(order, b.Author)
		}
		likes[b.Author] += b.Likes
	}

	top := order[0]
	for _, author := range order[1:] {
		if likes[author] > likes[top] {
			top = author
		}
	}

	return &AuthorLikeCount{Author: top, Likes: likes[top]}
}

// ComputeStats runs every aggregation over one snapshot.
func ComputeStats(blogs []Blog) *Stats {
	return &Stats{
		Blogs:      len(blogs),
		TotalLikes: TotalLikes(blogs),
		Favorite:   FavoriteBlog(blogs),
		MostBlogs:  MostBlogs(blogs),
		MostLikes:  MostLikes(blogs),
	}
}
