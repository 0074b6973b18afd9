// Package authorpages extends author archive routes with extra sub-pages such
// as /author/{name}/recipes.
//
// It derives rewrite rules for every configured page from the author
// permalink structure, registers the author_page query var, and swaps in an
// author-page-{slug} template when one exists. The pieces compose explicitly:
// pass [AuthorPages] as an [Extension] to [NewRewrite] and [NewServer].
//
// Example:
//
//	ext := authorpages.NewAuthorPages(authorpages.StaticPages("recipes", "bio"))
//	rw, err := authorpages.NewRewrite(authorpages.WithExtensions(ext))
//	srv := authorpages.NewServer(rw, locator, authorpages.WithExtensions(ext))
//	authorpages.Mount(authorpages.NewRouter(mux), "/", srv)
package authorpages
