package middleware

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	SessionCookieName = "savora_session"
	sidKey            = "sid"
)

// Session attribue un identifiant de session à chaque visiteur via un cookie
// signé, et le met dans le contexte Gin sous "sid". Les paniers et l'état de
// session sont rattachés à cet identifiant.
func Session(store *sessions.CookieStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, _ := store.Get(c.Request, SessionCookieName)

		sid, ok := sess.Values[sidKey].(string)
		if !ok || sid == "" {
			sid = uuid.NewString()
			sess.Values[sidKey] = sid
			if err := sess.Save(c.Request, c.Writer); err != nil {
				log.Printf("⚠️ Impossible d'écrire le cookie de session: %v", err)
			}
		}

		c.Set(sidKey, sid)
		c.Next()
	}
}
